package chat

import (
	"encoding/json"
	"log"
	"time"

	"github.com/duetchat/backend/internal/models"
)

// Inbound event types (client -> server). Dispatch is a closed switch over
// this set; anything else is answered with an error event.
const (
	EventJoinChat      = "join_chat"
	EventSendMessage   = "send_message"
	EventMarkSeen      = "mark_seen"
	EventEditMessage   = "edit_message"
	EventDeleteMessage = "delete_message"
	EventReactMessage  = "react_message"
	EventCallSignal    = "call_signal"
	EventWatchTogether = "watch_together"
)

// Outbound event types (server -> client). call_signal and watch_together
// are relayed under their inbound names.
const (
	EventMessage         = "message"
	EventMessageSeen     = "message_seen"
	EventMessageUpdated  = "message_updated"
	EventMessageDeleted  = "message_deleted"
	EventMessageReaction = "message_reaction"
	EventUserJoined      = "user_joined"
	EventUserLeft        = "user_left"
	EventOnlineUsers     = "online_users"
	EventError           = "error"
)

// Event is the wire format of every frame in both directions:
// a type tag plus a type-specific payload.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinPayload is the payload of join_chat.
type JoinPayload struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// SeenPayload is the payload of mark_seen and message_seen.
type SeenPayload struct {
	MessageID string `json:"messageId"`
}

// EditPayload is the payload of edit_message.
type EditPayload struct {
	MessageID string `json:"messageId"`
	Content   string `json:"content"`
}

// DeletePayload is the payload of delete_message and message_deleted.
type DeletePayload struct {
	MessageID string `json:"messageId"`
}

// ReactPayload is the payload of react_message. The userId field is ignored;
// the server uses its own view of the sender.
type ReactPayload struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
	UserID    string `json:"userId,omitempty"`
}

// UpdatedPayload is the payload of message_updated.
type UpdatedPayload struct {
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	IsEdited bool      `json:"isEdited"`
	EditedAt time.Time `json:"editedAt"`
}

// ReactionPayload is the payload of message_reaction: the authoritative
// post-toggle reaction list, not a delta.
type ReactionPayload struct {
	MessageID string            `json:"messageId"`
	Reactions []models.Reaction `json:"reactions"`
}

// newEvent encodes an outbound event frame. Payloads are server-built
// structs, so a marshal failure is a programming error; it is logged and
// the frame is dropped rather than crashing the connection.
func newEvent(eventType string, payload interface{}) []byte {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Chat] Failed to encode %s payload: %v", eventType, err)
		return nil
	}
	data, err := json.Marshal(Event{Type: eventType, Payload: raw})
	if err != nil {
		log.Printf("[Chat] Failed to encode %s event: %v", eventType, err)
		return nil
	}
	return data
}
