package services

import (
	"testing"

	"github.com/duetchat/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestWatchServiceLifecycle(t *testing.T) {
	req := require.New(t)
	s := NewWatchService()

	req.Nil(s.Current())

	session := s.Start(models.WatchSessionRequest{
		HostID:   "alice",
		HostName: "Alice",
		VideoURL: "https://example.com/v.mp4",
	})
	req.Equal("active", session.Status)
	req.NotEmpty(session.ID)

	current := s.Current()
	req.Equal(session.ID, current.ID)
	req.Equal("alice", current.HostID)

	updated, err := s.Update(models.WatchSessionRequest{CurrentTime: 42.5, IsPlaying: true})
	req.NoError(err)
	req.Equal(42.5, updated.CurrentTime)
	req.True(updated.IsPlaying)

	s.End()
	req.Nil(s.Current())
}

func TestWatchServiceStartReplacesActiveSession(t *testing.T) {
	req := require.New(t)
	s := NewWatchService()

	first := s.Start(models.WatchSessionRequest{HostID: "alice", VideoURL: "https://example.com/a.mp4"})
	second := s.Start(models.WatchSessionRequest{HostID: "bob", VideoURL: "https://example.com/b.mp4"})

	req.NotEqual(first.ID, second.ID)
	req.Equal("bob", s.Current().HostID)
}

func TestWatchServiceUpdateWithoutSession(t *testing.T) {
	req := require.New(t)
	s := NewWatchService()

	_, err := s.Update(models.WatchSessionRequest{CurrentTime: 1})
	req.Error(err)
}
