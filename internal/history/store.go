// Package history holds the bounded, most-recent-first clipboard history.
//
// The store is a fixed-size ring: pushing a new head is O(1) and, once the
// ring is full, the push overwrites the slot of the oldest entry.
package history

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultCapacity is the number of entries kept when none is configured.
	DefaultCapacity = 10

	// TimestampLayout renders capture times as DD-MM-YYYY HH:MM:SS.
	TimestampLayout = "02-01-2006 15:04:05"
)

var (
	// ErrInvalidInput is returned when asked to record empty text.
	ErrInvalidInput = errors.New("history: empty content")
	// ErrNotFound is returned for an index outside the current history.
	ErrNotFound = errors.New("history: entry not found")
)

// Entry is one captured clipboard snapshot. Entries are values and are never
// modified after capture.
type Entry struct {
	Content    string
	CapturedAt time.Time
}

// Timestamp returns the capture time in local time using TimestampLayout.
func (e Entry) Timestamp() string {
	return e.CapturedAt.Local().Format(TimestampLayout)
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the capture clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is the clipboard history. It is not safe for concurrent use; the
// monitor loop is its only owner.
type Store struct {
	ring []Entry
	head int // ring index of entry 0
	size int
	now  func() time.Time
}

// New returns an empty store holding at most capacity entries. A capacity
// below one selects DefaultCapacity.
func New(capacity int, opts ...Option) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	s := &Store{
		ring: make([]Entry, capacity),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Len returns the number of entries.
func (s *Store) Len() int { return s.size }

// Cap returns the maximum number of entries.
func (s *Store) Cap() int { return len(s.ring) }

// TryInsert records text as the new head. It reports false without changing
// anything when text equals the current head; only the head is compared, so
// text seen deeper in the history is recorded again. At capacity the oldest
// entry is discarded.
func (s *Store) TryInsert(text string) (bool, error) {
	if text == "" {
		return false, ErrInvalidInput
	}
	if s.size > 0 && s.ring[s.head].Content == text {
		return false, nil
	}

	e := Entry{Content: text, CapturedAt: s.now()}

	n := len(s.ring)
	s.head = (s.head - 1 + n) % n
	s.ring[s.head] = e
	if s.size < n {
		s.size++
	}
	return true, nil
}

// Head returns the most recent entry.
func (s *Store) Head() (Entry, bool) {
	if s.size == 0 {
		return Entry{}, false
	}
	return s.ring[s.head], true
}

// Get returns the entry at index, 0 being the most recent.
func (s *Store) Get(index int) (Entry, error) {
	if index < 0 || index >= s.size {
		return Entry{}, fmt.Errorf("%w: index %d, size %d", ErrNotFound, index, s.size)
	}
	return s.ring[s.slot(index)], nil
}

// Entries returns a copy of the history, most recent first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, s.size)
	for i := range out {
		out[i] = s.ring[s.slot(i)]
	}
	return out
}

// Clear discards every entry. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	clear(s.ring)
	s.head = 0
	s.size = 0
}

func (s *Store) slot(index int) int {
	return (s.head + index) % len(s.ring)
}
