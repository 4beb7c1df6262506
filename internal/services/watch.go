package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/duetchat/backend/internal/models"
	"github.com/google/uuid"
)

// WatchService holds the current watch-together session in memory.
// Playback synchronization runs over the realtime channel; this state only
// exists so a participant opening the page mid-session can discover it.
// A restart losing the session is acceptable, the host simply restarts it.
type WatchService struct {
	mu      sync.RWMutex
	session *models.WatchSession
}

// NewWatchService creates a WatchService with no active session.
func NewWatchService() *WatchService {
	return &WatchService{}
}

// Current returns a copy of the active session, or nil when none is active.
func (s *WatchService) Current() *models.WatchSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

// Start begins a new session, replacing any active one.
func (s *WatchService) Start(req models.WatchSessionRequest) *models.WatchSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &models.WatchSession{
		ID:          uuid.New().String(),
		HostID:      req.HostID,
		HostName:    req.HostName,
		VideoURL:    req.VideoURL,
		CurrentTime: req.CurrentTime,
		IsPlaying:   req.IsPlaying,
		Status:      "active",
		CreatedAt:   time.Now().UTC(),
	}

	log.Printf("[Watch] Session %s started by %s", s.session.ID, req.HostName)
	session := *s.session
	return &session
}

// Update applies playback state to the active session.
func (s *WatchService) Update(req models.WatchSessionRequest) (*models.WatchSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, fmt.Errorf("no active session")
	}

	if req.VideoURL != "" {
		s.session.VideoURL = req.VideoURL
	}
	s.session.CurrentTime = req.CurrentTime
	s.session.IsPlaying = req.IsPlaying

	session := *s.session
	return &session, nil
}

// End terminates the active session, if any.
func (s *WatchService) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		log.Printf("[Watch] Session %s ended", s.session.ID)
	}
	s.session = nil
}
