package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// EventPublisher is what services depend on to notify users.
type EventPublisher interface {
	BroadcastToUser(userID int64, event Event)
}

// Hub tracks live connections and fans events out to them.
type Hub struct {
	// userID -> set of connections; one user may have several tabs open.
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	seq atomic.Int64
}

// NewHub creates an idle hub. Start it with go hub.Run().
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns after Shutdown.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	log.WithFields(log.Fields{
		"component":   "ws",
		"user_id":     client.userID,
		"connections": len(h.clients[client.userID]),
	}).Info("client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	client.closeSend()
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	log.WithFields(log.Fields{
		"component": "ws",
		"user_id":   client.userID,
		"remaining": len(clients),
	}).Info("client disconnected")
}

// BroadcastToUser sends event to every connection of userID.
// Slow clients whose buffer is full are dropped.
func (h *Hub) BroadcastToUser(userID int64, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).WithField("component", "ws").Error("failed to marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			go h.drop(client)
		}
	}
}

// sendTo queues data for one client. It reports false only when the
// buffer is full; a client whose channel was closed is skipped silently.
func (h *Hub) sendTo(c *Client, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if c.closed {
		return true
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// ConnectionCount returns how many connections userID has open.
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Shutdown closes every connection and stops Run.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	select {
	case <-h.done:
		return
	default:
		close(h.done)
	}

	for _, clients := range h.clients {
		for client := range clients {
			client.closeSend()
		}
	}
	h.clients = make(map[int64]map[*Client]bool)
	log.WithField("component", "ws").Info("hub shut down, all connections closed")
}

// drop unregisters a client unless the hub is already gone.
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
