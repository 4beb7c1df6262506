package models

// UserInfo identifies a chat participant as exposed to clients.
type UserInfo struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// Participant is a live entry in the connection registry: one per open
// realtime connection. The same user reconnecting gets a new entry with a
// new connection ID but the same UserID.
type Participant struct {
	// UserID is the stable participant identity
	UserID string `json:"userId"`

	// UserName is the display name supplied at join time
	UserName string `json:"userName"`

	// ConnectionID identifies the underlying transport connection
	ConnectionID string `json:"connectionId"`
}
