package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// UserChecker lets the handler refuse connections for unknown users
// without importing the services package.
type UserChecker interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests to event streams.
type Handler struct {
	hub   *Hub
	users UserChecker
}

// NewHandler creates the WebSocket endpoint handler.
func NewHandler(hub *Hub, users UserChecker) *Handler {
	return &Handler{hub: hub, users: users}
}

// HandleConnection serves GET /ws?user_id=N.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID < 1 {
		http.Error(w, "user_id must be a positive integer", http.StatusBadRequest)
		return
	}

	ok, err := h.users.UserExists(r.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to look up websocket user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}

	ready, _ := json.Marshal(Event{Op: OpReady, Data: ReadyData{UserID: userID}})
	client.send <- ready

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump()
}
