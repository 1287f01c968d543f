// Package ws pushes friendship events to connected WebSocket clients.
//
// Layout:
//   - Hub keeps every live connection, keyed by user ID.
//   - Client is one connection with its read and write pumps.
//   - Event is the frame exchanged with the browser.
//
// Services publish through the EventPublisher interface after their
// transaction commits; the hub fans the event out to every tab of the user.
package ws

// Event is one WebSocket frame.
// Seq increases with every outbound event so clients can detect gaps.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client to server.
const (
	OpHeartbeat = "heartbeat"
)

// Server to client.
const (
	OpReady               = "ready"
	OpHeartbeatAck        = "heartbeat_ack"
	OpFriendRequestCreate = "friend_request_create"
	OpFriendRequestAccept = "friend_request_accept"
	OpFriendRemove        = "friend_remove"
)

// FriendEventData is the payload of every friendship event.
// UserID is the user who caused the event.
type FriendEventData struct {
	UserID   int64 `json:"user_id"`
	FriendID int64 `json:"friend_id"`
}

// ReadyData is sent once right after the upgrade.
type ReadyData struct {
	UserID int64 `json:"user_id"`
}
