// internal/interfaces/ws/hub.go
package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/enquiry"
)

// EventEnquiryStatusUpdated is the event name clients subscribe to
const EventEnquiryStatusUpdated = "enquiryStatusUpdated"

// Event is the wire envelope for pushed messages
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// roomMessage is a marshalled event addressed to one user's room
type roomMessage struct {
	userID  uint
	payload []byte
}

// Hub tracks connected clients per user and fans events out to them.
// Broadcasting to a user with no open connections is a no-op.
//
// All sends on client channels and all closes happen in the Run goroutine,
// so a disconnect can never race a delivery.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
}

// NewHub creates a new websocket hub
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage),
	}
}

// Run processes registration and delivery until the channels close. Call in
// its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.userID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[client.userID] = room
	}
	room[client] = true

	logrus.WithFields(logrus.Fields{
		"user_id":     client.userID,
		"connections": len(room),
	}).Debug("websocket client connected")
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.userID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}

	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.userID)
	}
}

// deliver fans a message out to the addressed room. Only called from Run, so
// no close on a client channel can land mid-iteration.
func (h *Hub) deliver(msg roomMessage) {
	h.mu.RLock()
	room := h.rooms[msg.userID]
	clients := make([]*Client, 0, len(room))
	for client := range room {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- msg.payload:
		default:
			// Send buffer full; the client is too slow to keep
			h.remove(client)
		}
	}
}

// NotifyStatusUpdate pushes an enquiry status change to every connection the
// owning user holds. Delivery is fire-and-forget: a slow client is dropped
// rather than blocking the caller.
func (h *Hub) NotifyStatusUpdate(userID uint, update enquiry.StatusUpdate) {
	payload, err := json.Marshal(Event{
		Event: EventEnquiryStatusUpdated,
		Data:  update,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to marshal status event")
		return
	}

	h.broadcast <- roomMessage{userID: userID, payload: payload}
}

// ConnectionCount returns the number of open connections for a user
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}
