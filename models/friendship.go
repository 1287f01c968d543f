package models

// FriendshipStatus is the state of a directed friend request.
type FriendshipStatus string

const (
	FriendshipStatusPending   FriendshipStatus = "pending"
	FriendshipStatusConfirmed FriendshipStatus = "confirmed"
)

// Friendship is a row of the friends table.
// UserID always names the user who sent the request, FriendID its target.
// A confirmed friendship is a single confirmed row, in whichever direction
// the request was originally made.
type Friendship struct {
	UserID    int64 `json:"user_id"`
	FriendID  int64 `json:"friend_id"`
	Confirmed bool  `json:"confirmed"`
}

// Status maps the stored flag onto the state machine.
func (f *Friendship) Status() FriendshipStatus {
	if f.Confirmed {
		return FriendshipStatusConfirmed
	}
	return FriendshipStatusPending
}

// Involves reports whether the row connects the two users, in either direction.
func (f *Friendship) Involves(a, b int64) bool {
	return (f.UserID == a && f.FriendID == b) || (f.UserID == b && f.FriendID == a)
}

// FriendshipResult is returned after a friend request is processed.
type FriendshipResult struct {
	UserID   int64            `json:"user_id"`
	FriendID int64            `json:"friend_id"`
	Status   FriendshipStatus `json:"status"`
}
