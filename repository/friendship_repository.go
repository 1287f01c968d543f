package repository

import (
	"context"

	"github.com/akinalp/filmorate/models"
)

// FriendshipRepository persists directed friend requests.
//
// A row (user_id, friend_id) is a request from user_id to friend_id; it is
// either pending or confirmed. The service keeps at most one row per pair.
type FriendshipRepository interface {
	Create(ctx context.Context, f *models.Friendship) error
	// GetByPair returns the row between a and b in either direction.
	GetByPair(ctx context.Context, a, b int64) (*models.Friendship, error)
	// Confirm marks the pending request from requesterID to targetID as confirmed.
	// No such pending row yields pkg.ErrNotFound.
	Confirm(ctx context.Context, requesterID, targetID int64) error
	// DeleteByPair removes rows in both directions. Nothing to delete is not an error.
	DeleteByPair(ctx context.Context, a, b int64) error
	// ListFriends returns users with an outgoing request from userID in any state
	// plus users whose request to userID was confirmed, ordered by ID.
	ListFriends(ctx context.Context, userID int64) ([]models.User, error)
	// ListIncoming returns users whose request to userID is still pending.
	ListIncoming(ctx context.Context, userID int64) ([]models.User, error)
	DeleteAll(ctx context.Context) error
}
