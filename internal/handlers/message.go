package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/duetchat/backend/internal/models"
)

// MessageLister is the slice of the message store the history endpoint needs.
type MessageLister interface {
	ListMessages(limit int) ([]models.Message, error)
}

// MessageHandler serves message history for the initial page load. Live
// updates arrive over the realtime channel; this endpoint only backfills.
type MessageHandler struct {
	store MessageLister
}

// NewMessageHandler creates a new MessageHandler instance.
func NewMessageHandler(store MessageLister) *MessageHandler {
	return &MessageHandler{store: store}
}

// GetMessages handles GET /api/messages?limit=
// Returns the most recent messages with reactions, in chronological order.
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	if limit < 1 || limit > 100 {
		http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
		return
	}

	messages, err := h.store.ListMessages(limit)
	if err != nil {
		http.Error(w, "failed to fetch messages", http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	writeJSON(w, http.StatusOK, models.GetMessagesResponse{
		Success:  true,
		Messages: messages,
	})
}

// writeJSON is a helper function to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
