package types

import "time"

// LibraryEvent is pushed over the WebSocket hub whenever the song library
// changes, so connected clients can refetch the listing.
type LibraryEvent struct {
	Type      string    `json:"type"` // "added"
	Entry     *Song     `json:"entry,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
