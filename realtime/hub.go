package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"inovatrust/domain/entities"
	"inovatrust/domain/events"

	log "github.com/sirupsen/logrus"
)

// Hub is the realtime room registry. Each conversation id is a room;
// a connection belongs to at most one room at a time.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

// NewHub creates an empty room registry
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Join moves the client into the conversation's room, leaving any room
// it was in before.
func (h *Hub) Join(c *Client, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(c)

	room, ok := h.rooms[conversationID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[conversationID] = room
	}
	room[c] = struct{}{}
	c.room = conversationID

	log.WithFields(log.Fields{
		"conversationId": conversationID,
		"roomSize":       len(room),
	}).Debug("Client joined room")
}

// Disconnect removes the client from its room and closes its send
// channel. Closing under the hub lock keeps broadcasts, which send under
// the read lock, from racing the close.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c)
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (h *Hub) leaveLocked(c *Client) {
	if c.room == "" {
		return
	}
	if room, ok := h.rooms[c.room]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.room)
		}
	}
	c.room = ""
}

// RoomSize returns the number of connections in a conversation's room
func (h *Hub) RoomSize(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[conversationID])
}

// messageEnvelope is the wire format for a broadcast chat message
type messageEnvelope struct {
	Type    string                `json:"type"`
	Message *entities.ChatMessage `json:"message"`
}

// BroadcastMessage fans a chat message out to its conversation's room.
// Delivery is best-effort: slow connections are skipped, not waited on.
func (h *Hub) BroadcastMessage(message *entities.ChatMessage) {
	payload, err := json.Marshal(messageEnvelope{Type: "message", Message: message})
	if err != nil {
		log.WithError(err).Error("Failed to marshal broadcast message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[message.ConversationID] {
		select {
		case c.send <- payload:
		default:
			log.WithField("conversationId", message.ConversationID).
				Warn("Dropping broadcast to slow client")
		}
	}
}

// HandleMessageCreated adapts the hub to the event bus so committed chat
// messages reach their rooms.
func (h *Hub) HandleMessageCreated(_ context.Context, event events.Event) {
	e, ok := event.(events.MessageCreatedEvent)
	if !ok || e.Message == nil {
		return
	}
	h.BroadcastMessage(e.Message)
}
