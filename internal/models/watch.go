package models

import "time"

// WatchSession is the current watch-together session state. Only one session
// can be active at a time; a new session replaces the previous one. Playback
// sync itself happens over the realtime channel, this record only lets a
// late joiner discover an in-progress session.
type WatchSession struct {
	ID          string    `json:"id"`
	HostID      string    `json:"hostId"`
	HostName    string    `json:"hostName"`
	VideoURL    string    `json:"videoUrl"`
	CurrentTime float64   `json:"currentTime"`
	IsPlaying   bool      `json:"isPlaying"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WatchSessionRequest is the request body for creating, updating or ending
// the watch-together session.
type WatchSessionRequest struct {
	Action      string  `json:"action"` // create, update, end
	HostID      string  `json:"hostId"`
	HostName    string  `json:"hostName"`
	VideoURL    string  `json:"videoUrl"`
	CurrentTime float64 `json:"currentTime"`
	IsPlaying   bool    `json:"isPlaying"`
}

// WatchSessionResponse wraps the session for API responses; Session is null
// when no session is active.
type WatchSessionResponse struct {
	Success bool          `json:"success"`
	Session *WatchSession `json:"session"`
}
