package chat

import (
	"encoding/json"
	"log"

	"github.com/duetchat/backend/internal/models"
)

// Hub coordinates the chat session: it owns the connection registry, fans
// events out to connected clients, and relays signaling payloads.
//
// Event handling runs on each connection's read goroutine, so events from
// one connection keep their order while connections interleave freely.
// Shared state (registry, client set) is mutex-guarded.
type Hub struct {
	registry *Registry
	store    MessageStore

	// clients holds admitted connections only; a connection that has not
	// completed join_chat receives no broadcasts
	clients clientSet
}

// NewHub creates a Hub backed by the given message store.
func NewHub(store MessageStore) *Hub {
	return &Hub{
		registry: NewRegistry(),
		store:    store,
		clients:  newClientSet(),
	}
}

// Registry exposes the connection registry for read-side collaborators.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Dispatch handles one inbound frame from a client. Unknown or malformed
// frames produce an error event on that connection only; nothing a single
// connection sends can take down the process.
func (h *Hub) Dispatch(c *Client, data []byte) {
	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		h.sendError(c, "malformed event")
		return
	}

	switch evt.Type {
	case EventJoinChat:
		h.handleJoin(c, evt.Payload)
	case EventSendMessage:
		h.handleSendMessage(c, evt.Payload)
	case EventMarkSeen:
		h.handleMarkSeen(c, evt.Payload)
	case EventEditMessage:
		h.handleEditMessage(c, evt.Payload)
	case EventDeleteMessage:
		h.handleDeleteMessage(c, evt.Payload)
	case EventReactMessage:
		h.handleReactMessage(c, evt.Payload)
	case EventCallSignal:
		h.handleCallSignal(c, evt.Payload)
	case EventWatchTogether:
		h.handleWatchTogether(c, evt.Payload)
	default:
		h.sendError(c, "unknown event type: "+evt.Type)
	}
}

// handleJoin admits the connection as a participant. Nothing about the
// connection exists in the hub before this succeeds.
func (h *Hub) handleJoin(c *Client, payload json.RawMessage) {
	var req JoinPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.UserID == "" || req.UserName == "" {
		h.sendError(c, "join_chat requires userId and userName")
		return
	}

	p, err := h.registry.Admit(c.ConnectionID, req.UserID, req.UserName)
	if err != nil {
		log.Printf("[Chat] Join rejected for %s (%s): %v", req.UserName, req.UserID, err)
		h.sendError(c, "Chat room is full (max 2 users)")
		c.close()
		return
	}

	c.setParticipant(p)
	h.clients.add(c)

	log.Printf("[Chat] %s (%s) joined (%d/%d users)",
		p.UserName, p.UserID, h.registry.DistinctCount(), MaxParticipants)

	// Everyone, including the joiner, learns about the join; only the
	// joiner gets the full presence snapshot
	h.broadcastAll(newEvent(EventUserJoined, models.UserInfo{UserID: p.UserID, UserName: p.UserName}))
	h.sendTo(c, newEvent(EventOnlineUsers, h.registry.Participants()))
}

// Disconnect tears the connection down. A connection that never completed a
// join leaves no trace and announces nothing.
func (h *Hub) Disconnect(c *Client) {
	h.clients.remove(c)
	c.close()

	p, joined := h.registry.Remove(c.ConnectionID)
	if !joined {
		return
	}

	log.Printf("[Chat] %s (%s) left (%d/%d users)",
		p.UserName, p.UserID, h.registry.DistinctCount(), MaxParticipants)

	h.broadcastAll(newEvent(EventUserLeft, models.UserInfo{UserID: p.UserID, UserName: p.UserName}))
}

// sender returns the admitted participant behind a connection, or emits an
// error event and reports false. Every post-join operation starts here.
func (h *Hub) sender(c *Client) (*models.Participant, bool) {
	p, ok := h.registry.Get(c.ConnectionID)
	if !ok {
		h.sendError(c, "not authenticated")
		return nil, false
	}
	return p, true
}

// broadcastAll fans a frame out to every admitted connection. Membership is
// whatever the client set holds at call time.
func (h *Hub) broadcastAll(data []byte) {
	if data == nil {
		return
	}
	for _, c := range h.clients.snapshot() {
		h.sendTo(c, data)
	}
}

// broadcastExcept fans a frame out to everyone but the sender's connection.
func (h *Hub) broadcastExcept(sender *Client, data []byte) {
	if data == nil {
		return
	}
	for _, c := range h.clients.snapshot() {
		if c == sender {
			continue
		}
		h.sendTo(c, data)
	}
}

// sendToUser delivers a frame to every connection of one participant.
// Returns the number of connections reached.
func (h *Hub) sendToUser(userID string, data []byte) int {
	if data == nil {
		return 0
	}
	n := 0
	for _, c := range h.clients.snapshot() {
		if p := c.getParticipant(); p != nil && p.UserID == userID {
			h.sendTo(c, data)
			n++
		}
	}
	return n
}

// sendTo queues a frame on one connection. A client whose buffer is full is
// dropped; its read pump will observe the closed connection and finish the
// teardown through Disconnect.
func (h *Hub) sendTo(c *Client, data []byte) {
	if data == nil {
		return
	}
	if !c.trySend(data) {
		log.Printf("[Chat] Dropping slow connection %s", c.ConnectionID)
		h.clients.remove(c)
		c.close()
	}
}

// sendError emits an error event to a single connection.
func (h *Hub) sendError(c *Client, message string) {
	h.sendTo(c, newEvent(EventError, message))
}
