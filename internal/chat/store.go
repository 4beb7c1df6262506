package chat

import "github.com/duetchat/backend/internal/models"

// MessageStore is the persistence collaborator consumed by the hub.
// The Supabase client implements it in production; tests substitute a fake.
//
// The hub calls CreateMessage before broadcasting so the fan-out carries the
// canonical ID and timestamp. Edit and delete enforce ownership inside the
// store (filtered mutations); the hub trusts their result and only relays.
type MessageStore interface {
	CreateMessage(req models.SendMessageRequest) (*models.Message, error)
	MarkSeen(messageID string) error
	EditMessage(messageID, userID, content string) error
	DeleteMessage(messageID, userID string) error
	ToggleReaction(messageID, userID, emoji string) ([]models.Reaction, error)
}
