package models

import "encoding/json"

// Signal types relayed between clients. The server never interprets these;
// the list exists for documentation and for client implementors. Call setup
// and teardown are driven entirely by the two peers.
const (
	SignalOffer        = "offer"
	SignalAnswer       = "answer"
	SignalICECandidate = "ice-candidate"
	SignalCallStart    = "call-start"
	SignalCallAnswer   = "call-answer"
	SignalCallDecline  = "call-decline"
	SignalCallEnd      = "call-end"
	SignalScreenStart  = "screen-share-start"
	SignalScreenStop   = "screen-share-stop"

	WatchPlay      = "play"
	WatchPause     = "pause"
	WatchSeek      = "seek"
	WatchSync      = "sync"
	WatchJoin      = "join"
	WatchLeave     = "leave"
	WatchURLChange = "url-change"
)

// SignalEnvelope wraps a call-signaling or watch-together payload.
// Data is opaque to the server (SDP, ICE candidates, playback positions);
// it is forwarded byte-for-byte. From is rewritten by the server to the
// authenticated sender's ID so clients cannot spoof each other.
type SignalEnvelope struct {
	Type     string          `json:"type"`
	From     string          `json:"from"`
	To       string          `json:"to,omitempty"`
	CallType string          `json:"callType,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}
