// Package message defines the clipring control protocol: the request and
// reply bodies of the Control gRPC service. Bodies are plain structs carried
// as JSON by the wire codec.
package message

import (
	"time"

	"go.klb.dev/clipring/internal/history"
)

// Entry is one history entry as sent to clients.
type Entry struct {
	Position   int       `json:"position"`
	Content    string    `json:"content"`
	CapturedAt time.Time `json:"captured_at"`
}

// ListRequest asks for the current history.
type ListRequest struct{}

// History is the reply to ListRequest, most recent entry first.
type History struct {
	Entries  []Entry `json:"entries"`
	Capacity int     `json:"capacity"`
}

// RestoreRequest puts the entry at the 1-based Position back on the clipboard.
type RestoreRequest struct {
	Position int `json:"position"`
}

// ClearRequest empties the history.
type ClearRequest struct{}

// Empty is the reply to requests that return nothing.
type Empty struct{}

// NewHistory builds a History reply, numbering entries from 1.
func NewHistory(entries []history.Entry, capacity int) *History {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Position: i + 1, Content: e.Content, CapturedAt: e.CapturedAt}
	}
	return &History{Entries: out, Capacity: capacity}
}
