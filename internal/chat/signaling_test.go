package chat

import (
	"encoding/json"
	"testing"

	"github.com/duetchat/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCallSignalDeliveredToTargetOnly(t *testing.T) {
	req := require.New(t)
	h := NewHub(&fakeStore{})

	a := join(t, h, "alice", "Alice")
	b := join(t, h, "bob", "Bob")
	drain(a)
	drain(b)

	h.Dispatch(a, rawEvent(t, EventCallSignal, models.SignalEnvelope{
		Type: models.SignalOffer,
		To:   "bob",
		Data: json.RawMessage(`{"sdp":"v=0..."}`),
	}))

	evt := nextEvent(t, b)
	req.Equal(EventCallSignal, evt.Type)
	env := payloadAs[models.SignalEnvelope](t, evt)
	req.Equal(models.SignalOffer, env.Type)
	req.JSONEq(`{"sdp":"v=0..."}`, string(env.Data))

	// Sender receives nothing back
	requireNoEvent(t, a)
}

func TestCallSignalRewritesFrom(t *testing.T) {
	req := require.New(t)
	h := NewHub(&fakeStore{})

	a := join(t, h, "alice", "Alice")
	b := join(t, h, "bob", "Bob")
	drain(a)
	drain(b)

	// Claimed sender is bob; the relay overwrites it
	h.Dispatch(a, rawEvent(t, EventCallSignal, models.SignalEnvelope{
		Type: models.SignalCallStart,
		From: "bob",
		To:   "bob",
	}))

	env := payloadAs[models.SignalEnvelope](t, nextEvent(t, b))
	req.Equal("alice", env.From)
}

func TestCallSignalToAbsentTargetIsDropped(t *testing.T) {
	req := require.New(t)
	h := NewHub(&fakeStore{})

	a := join(t, h, "alice", "Alice")
	drain(a)

	h.Dispatch(a, rawEvent(t, EventCallSignal, models.SignalEnvelope{
		Type: models.SignalOffer,
		To:   "ghost",
	}))

	// No delivery and no error surfaced to the sender
	requireNoEvent(t, a)
	req.Equal(1, h.Registry().DistinctCount())
}

func TestCallSignalReachesAllConnectionsOfTarget(t *testing.T) {
	req := require.New(t)
	h := NewHub(&fakeStore{})

	a := join(t, h, "alice", "Alice")
	b1 := join(t, h, "bob", "Bob")
	b2 := join(t, h, "bob", "Bob") // second tab
	drain(a)
	drain(b1)
	drain(b2)

	h.Dispatch(a, rawEvent(t, EventCallSignal, models.SignalEnvelope{
		Type: models.SignalCallStart,
		To:   "bob",
	}))

	for _, c := range []*Client{b1, b2} {
		evt := nextEvent(t, c)
		req.Equal(EventCallSignal, evt.Type)
	}
	requireNoEvent(t, a)
}

func TestWatchTogetherExcludesSender(t *testing.T) {
	req := require.New(t)
	h := NewHub(&fakeStore{})

	a := join(t, h, "alice", "Alice")
	b := join(t, h, "bob", "Bob")
	drain(a)
	drain(b)

	h.Dispatch(a, rawEvent(t, EventWatchTogether, models.SignalEnvelope{
		Type: models.WatchPlay,
		Data: json.RawMessage(`{"currentTime":42.5}`),
	}))

	evt := nextEvent(t, b)
	req.Equal(EventWatchTogether, evt.Type)
	env := payloadAs[models.SignalEnvelope](t, evt)
	req.Equal(models.WatchPlay, env.Type)
	req.Equal("alice", env.From)

	requireNoEvent(t, a)
}

func TestSignalingRequiresJoin(t *testing.T) {
	req := require.New(t)
	h := NewHub(&fakeStore{})

	a := join(t, h, "alice", "Alice")
	drain(a)

	stranger := NewClient(h, nil)
	h.Dispatch(stranger, rawEvent(t, EventCallSignal, models.SignalEnvelope{
		Type: models.SignalOffer,
		To:   "alice",
	}))

	evt := nextEvent(t, stranger)
	req.Equal(EventError, evt.Type)
	requireNoEvent(t, a)
}

func TestSignalPayloadStaysOpaque(t *testing.T) {
	req := require.New(t)
	h := NewHub(&fakeStore{})

	a := join(t, h, "alice", "Alice")
	b := join(t, h, "bob", "Bob")
	drain(a)
	drain(b)

	// Deliberately odd payload the server must not touch
	raw := `{"nested":{"deep":[1,2,3]},"weird":"é"}`
	h.Dispatch(a, rawEvent(t, EventCallSignal, models.SignalEnvelope{
		Type: models.SignalICECandidate,
		To:   "bob",
		Data: json.RawMessage(raw),
	}))

	env := payloadAs[models.SignalEnvelope](t, nextEvent(t, b))
	req.JSONEq(raw, string(env.Data))
}
