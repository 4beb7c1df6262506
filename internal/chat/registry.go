package chat

import (
	"errors"
	"sync"

	"github.com/duetchat/backend/internal/models"
)

// MaxParticipants is the hard cap on distinct participants. The chat is
// private between exactly two people.
const MaxParticipants = 2

// ErrRoomFull is returned by Admit when a third distinct participant tries
// to join while two others are present.
var ErrRoomFull = errors.New("chat room is full")

// Registry tracks which connections belong to which participants and
// enforces the two-party admission limit. Admit and Remove are the only
// mutators; everything else is a read.
//
// A participant who is already present may always open another connection
// (reconnect, second tab) without counting against the limit.
type Registry struct {
	mu sync.RWMutex

	// conns maps connectionID -> participant, one entry per open connection
	conns map[string]*models.Participant

	// order holds connection IDs in admission order, for stable snapshots
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]*models.Participant),
	}
}

// Admit registers a connection for the given participant. It fails with
// ErrRoomFull when two other distinct participants are already present and
// this userID is not one of them.
func (r *Registry) Admit(connectionID, userID, userName string) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasUserLocked(userID) && r.distinctCountLocked() >= MaxParticipants {
		return nil, ErrRoomFull
	}

	p := &models.Participant{
		UserID:       userID,
		UserName:     userName,
		ConnectionID: connectionID,
	}

	if _, exists := r.conns[connectionID]; !exists {
		r.order = append(r.order, connectionID)
	}
	r.conns[connectionID] = p

	return p, nil
}

// Remove deletes the connection's entry. The second return value reports
// whether the connection had actually been admitted.
func (r *Registry) Remove(connectionID string) (*models.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.conns[connectionID]
	if !ok {
		return nil, false
	}

	delete(r.conns, connectionID)
	for i, id := range r.order {
		if id == connectionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return p, true
}

// Get returns the participant behind a connection, if that connection has
// completed a join.
func (r *Registry) Get(connectionID string) (*models.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.conns[connectionID]
	return p, ok
}

// Participants returns the distinct online participants in join order.
func (r *Registry) Participants() []models.UserInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, MaxParticipants)
	users := make([]models.UserInfo, 0, MaxParticipants)
	for _, connID := range r.order {
		p := r.conns[connID]
		if seen[p.UserID] {
			continue
		}
		seen[p.UserID] = true
		users = append(users, models.UserInfo{UserID: p.UserID, UserName: p.UserName})
	}
	return users
}

// DistinctCount returns the number of distinct participants present.
func (r *Registry) DistinctCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.distinctCountLocked()
}

func (r *Registry) distinctCountLocked() int {
	seen := make(map[string]bool, MaxParticipants)
	for _, p := range r.conns {
		seen[p.UserID] = true
	}
	return len(seen)
}

func (r *Registry) hasUserLocked(userID string) bool {
	for _, p := range r.conns {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
