package models

import "time"

// Valid message types. Everything except "text" references an uploaded file.
const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeVideo    = "video"
	MessageTypeDocument = "document"
	MessageTypeVoice    = "voice"
)

// Message represents a chat message as stored in the database and as
// delivered over the realtime channel. The server holds it only transiently
// while relaying; the database is the source of truth.
type Message struct {
	// ID is the unique identifier assigned by the database on insert
	ID string `json:"id"`

	// SenderID is the sender's participant ID
	SenderID string `json:"senderId"`

	// SenderName is the sender's display name
	SenderName string `json:"senderName"`

	// SenderEmoji is the sender's chosen avatar emoji
	SenderEmoji string `json:"senderEmoji,omitempty"`

	// Content is the message text; nil for pure file/voice messages
	Content *string `json:"content"`

	// MessageType is one of text, image, video, document, voice
	MessageType string `json:"messageType"`

	// FileID references an uploaded file for non-text messages
	FileID *string `json:"fileId"`

	// FileURL is the storage path of the uploaded file
	FileURL string `json:"fileUrl,omitempty"`

	// FileName is the original name of the uploaded file
	FileName string `json:"fileName,omitempty"`

	// VoiceDuration is the recording length in seconds for voice messages
	VoiceDuration *int `json:"voiceDuration,omitempty"`

	// CreatedAt is when the message was persisted
	CreatedAt time.Time `json:"createdAt"`

	// Seen indicates the other participant has seen the message
	Seen bool `json:"seen"`

	// ReplyToID references the message this one replies to
	ReplyToID *string `json:"replyToId,omitempty"`

	// IsEdited is set once the sender edits the message
	IsEdited bool `json:"isEdited"`

	// EditedAt is when the last edit happened
	EditedAt *time.Time `json:"editedAt,omitempty"`

	// Reactions is the full reaction list for this message
	Reactions []Reaction `json:"reactions,omitempty"`
}

// Reaction is a single emoji reaction on a message. At most one reaction
// exists per (message, user) pair; reacting again toggles or replaces it.
type Reaction struct {
	ID        string    `json:"id"`
	MessageID string    `json:"messageId"`
	UserID    string    `json:"userId"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

// SendMessageRequest is the payload of a send_message event. SenderID and
// SenderName are overwritten with the server's trusted view of the sender
// before the message is persisted.
type SendMessageRequest struct {
	SenderID      string  `json:"senderId"`
	SenderName    string  `json:"senderName"`
	SenderEmoji   string  `json:"senderEmoji,omitempty"`
	Content       *string `json:"content"`
	MessageType   string  `json:"messageType"`
	FileID        *string `json:"fileId"`
	FileURL       string  `json:"fileUrl,omitempty"`
	FileName      string  `json:"fileName,omitempty"`
	VoiceDuration *int    `json:"voiceDuration,omitempty"`
	ReplyToID     *string `json:"replyToId,omitempty"`
}

// GetMessagesResponse is the response for fetching message history
type GetMessagesResponse struct {
	Success  bool      `json:"success"`
	Messages []Message `json:"messages"`
}
