package chat

import (
	"encoding/json"

	"github.com/duetchat/backend/internal/models"
)

// addressing selects who receives a relayed signal.
type addressing int

const (
	// addressOne delivers to the participant named in the envelope's To field
	addressOne addressing = iota
	// addressAll delivers to every admitted connection
	addressAll
	// addressAllExceptSender delivers to everyone but the sending connection
	addressAllExceptSender
)

// handleCallSignal forwards a WebRTC signaling envelope to the addressed
// participant only. If the target is not connected the envelope vanishes:
// call signaling is ephemeral and the caller handles its own timeouts.
func (h *Hub) handleCallSignal(c *Client, payload json.RawMessage) {
	h.relaySignal(EventCallSignal, c, payload, addressOne)
}

// handleWatchTogether forwards a watch-together sync envelope to everyone
// except the sender, who already applied the change locally.
func (h *Hub) handleWatchTogether(c *Client, payload json.RawMessage) {
	h.relaySignal(EventWatchTogether, c, payload, addressAllExceptSender)
}

// relaySignal is the shared relay primitive for both signal families. The
// envelope's Data is never inspected; the server stays compatible with any
// client-side protocol changes. From is rewritten to the authenticated
// sender so envelopes cannot be spoofed.
func (h *Hub) relaySignal(event string, c *Client, payload json.RawMessage, mode addressing) {
	sender, ok := h.sender(c)
	if !ok {
		return
	}

	var env models.SignalEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		h.sendError(c, "invalid signal payload")
		return
	}
	env.From = sender.UserID

	data := newEvent(event, env)
	switch mode {
	case addressOne:
		h.sendToUser(env.To, data)
	case addressAllExceptSender:
		h.broadcastExcept(c, data)
	case addressAll:
		h.broadcastAll(data)
	}
}
