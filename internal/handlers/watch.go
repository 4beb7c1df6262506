package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/duetchat/backend/internal/models"
	"github.com/duetchat/backend/internal/services"
)

// WatchHandler exposes the watch-together session state so a participant
// joining mid-session can catch up before live sync events arrive.
type WatchHandler struct {
	watchService *services.WatchService
}

// NewWatchHandler creates a new WatchHandler instance.
func NewWatchHandler(watchService *services.WatchService) *WatchHandler {
	return &WatchHandler{watchService: watchService}
}

// GetSession handles GET /api/watch-together
// Returns the active session, or a null session when none is running.
func (h *WatchHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.WatchSessionResponse{
		Success: true,
		Session: h.watchService.Current(),
	})
}

// PostSession handles POST /api/watch-together
// Creates, updates or ends the session depending on the action field.
func (h *WatchHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	var req models.WatchSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch req.Action {
	case "create":
		if req.HostID == "" || req.VideoURL == "" {
			http.Error(w, "hostId and videoUrl are required", http.StatusBadRequest)
			return
		}
		session := h.watchService.Start(req)
		writeJSON(w, http.StatusOK, models.WatchSessionResponse{Success: true, Session: session})

	case "update":
		session, err := h.watchService.Update(req)
		if err != nil {
			http.Error(w, "no active session", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, models.WatchSessionResponse{Success: true, Session: session})

	case "end":
		h.watchService.End()
		writeJSON(w, http.StatusOK, models.WatchSessionResponse{Success: true})

	default:
		http.Error(w, "invalid action", http.StatusBadRequest)
	}
}
