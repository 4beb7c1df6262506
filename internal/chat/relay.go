package chat

import (
	"encoding/json"
	"log"
	"time"

	"github.com/duetchat/backend/internal/models"
	"github.com/google/uuid"
)

// handleSendMessage persists the message first so the broadcast carries the
// canonical ID and timestamp, then fans it out to every connection,
// including the sender's own. The store call runs on the sender's read
// goroutine; if the sender disconnects while it is pending, the broadcast
// still goes to whoever is connected when it completes.
func (h *Hub) handleSendMessage(c *Client, payload json.RawMessage) {
	sender, ok := h.sender(c)
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		h.sendError(c, "invalid send_message payload")
		return
	}

	// The server's view of the sender wins over whatever the client claims
	req.SenderID = sender.UserID
	req.SenderName = sender.UserName
	if req.MessageType == "" {
		req.MessageType = models.MessageTypeText
	}

	msg, err := h.store.CreateMessage(req)
	if err != nil {
		log.Printf("[Chat] Failed to store message from %s: %v", sender.UserID, err)
		h.sendError(c, "failed to send message")
		return
	}

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	log.Printf("[Chat] Message %s from %s (%s)", msg.ID, sender.UserName, msg.MessageType)
	h.broadcastAll(newEvent(EventMessage, msg))
}

// handleMarkSeen broadcasts the seen-state change to everyone. Persistence
// is best effort: seen is monotonic, so a lost write is corrected by the
// next mark_seen for the same message.
func (h *Hub) handleMarkSeen(c *Client, payload json.RawMessage) {
	if _, ok := h.sender(c); !ok {
		return
	}

	var req SeenPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.MessageID == "" {
		h.sendError(c, "mark_seen requires messageId")
		return
	}

	if err := h.store.MarkSeen(req.MessageID); err != nil {
		log.Printf("[Chat] Failed to persist seen for %s: %v", req.MessageID, err)
	}

	h.broadcastAll(newEvent(EventMessageSeen, SeenPayload{MessageID: req.MessageID}))
}

// handleEditMessage lets the store perform the ownership-checked mutation,
// then broadcasts the update envelope. The hub itself never decides who may
// edit what.
func (h *Hub) handleEditMessage(c *Client, payload json.RawMessage) {
	sender, ok := h.sender(c)
	if !ok {
		return
	}

	// Empty content is allowed; only the message ID is mandatory
	var req EditPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.MessageID == "" {
		h.sendError(c, "edit_message requires messageId")
		return
	}

	if err := h.store.EditMessage(req.MessageID, sender.UserID, req.Content); err != nil {
		log.Printf("[Chat] Edit of %s by %s failed: %v", req.MessageID, sender.UserID, err)
		h.sendError(c, "failed to edit message")
		return
	}

	h.broadcastAll(newEvent(EventMessageUpdated, UpdatedPayload{
		ID:       req.MessageID,
		Content:  req.Content,
		IsEdited: true,
		EditedAt: time.Now().UTC(),
	}))
}

// handleDeleteMessage deletes through the store, then broadcasts the
// deletion by ID.
func (h *Hub) handleDeleteMessage(c *Client, payload json.RawMessage) {
	sender, ok := h.sender(c)
	if !ok {
		return
	}

	var req DeletePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.MessageID == "" {
		h.sendError(c, "delete_message requires messageId")
		return
	}

	if err := h.store.DeleteMessage(req.MessageID, sender.UserID); err != nil {
		log.Printf("[Chat] Delete of %s by %s failed: %v", req.MessageID, sender.UserID, err)
		h.sendError(c, "failed to delete message")
		return
	}

	h.broadcastAll(newEvent(EventMessageDeleted, DeletePayload{MessageID: req.MessageID}))
}

// handleReactMessage toggles the sender's reaction and broadcasts the
// authoritative post-toggle list; clients replace their local reaction list
// for the message wholesale.
func (h *Hub) handleReactMessage(c *Client, payload json.RawMessage) {
	sender, ok := h.sender(c)
	if !ok {
		return
	}

	var req ReactPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.MessageID == "" || req.Emoji == "" {
		h.sendError(c, "react_message requires messageId and emoji")
		return
	}

	reactions, err := h.store.ToggleReaction(req.MessageID, sender.UserID, req.Emoji)
	if err != nil {
		log.Printf("[Chat] Reaction on %s by %s failed: %v", req.MessageID, sender.UserID, err)
		h.sendError(c, "failed to react to message")
		return
	}

	h.broadcastAll(newEvent(EventMessageReaction, ReactionPayload{
		MessageID: req.MessageID,
		Reactions: reactions,
	}))
}
