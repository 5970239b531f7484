// Package clip is the clipboard access adapter. Every backend exposes the same
// two text operations and holds the host clipboard only for the duration of a
// single call:
//
//	system.go: golang.design/x/clipboard (cgo, native APIs)
//	atotto.go: github.com/atotto/clipboard (pbcopy, xclip, xsel, wl-copy, win32)
//	memory.go: process-local clipboard for headless hosts and tests
package clip

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"
)

// DefaultMaxLength is the longest text, in characters, kept from a read.
const DefaultMaxLength = 4096

var (
	// ErrInvalidInput is returned when asked to write empty text.
	ErrInvalidInput = errors.New("clip: empty text")
	// ErrUnavailable is returned when the clipboard could not be opened.
	ErrUnavailable = errors.New("clip: clipboard unavailable")
)

// Backend is the interface that all clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ReadText returns the current text payload truncated to the backend's
	// maximum length. ok is false when the clipboard holds no text or could
	// not be opened; neither case is an error for the caller.
	ReadText() (text string, ok bool)

	// WriteText replaces the clipboard contents with text.
	WriteText(text string) error

	// Close releases any resources held by the backend.
	Close()
}

// Kind names a backend implementation.
type Kind string

const (
	KindAuto   Kind = "auto"
	KindSystem Kind = "system"
	KindAtotto Kind = "atotto"
	KindMemory Kind = "memory"
)

// ParseKind validates a backend name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case "", KindAuto:
		return KindAuto, nil
	case KindSystem, KindAtotto, KindMemory:
		return k, nil
	default:
		return "", fmt.Errorf("unknown clipboard backend %q (want auto|system|atotto|memory)", s)
	}
}

// New returns the backend named by kind. KindAuto tries the native clipboard,
// then the helper-binary clipboard, and finally falls back to a process-local
// clipboard so the tool still runs on headless hosts.
func New(kind Kind, maxLength int) (Backend, error) {
	if maxLength < 1 {
		maxLength = DefaultMaxLength
	}
	switch kind {
	case KindSystem:
		return NewSystem(maxLength)
	case KindAtotto:
		return NewAtotto(maxLength)
	case KindMemory:
		return NewMemory(maxLength), nil
	}

	b, err := NewSystem(maxLength)
	if err == nil {
		return b, nil
	}
	slog.Debug("native clipboard unavailable", "err", err)

	if b, err := NewAtotto(maxLength); err == nil {
		return b, nil
	}
	slog.Warn("no host clipboard found, using process-local clipboard")
	return NewMemory(maxLength), nil
}

// handle mirrors the open/close discipline of the host clipboard inside this
// process: only one operation may hold it, and a concurrent attempt sees the
// clipboard as locked. It does not detect locks held by other applications;
// the system and atotto backends learn about those from the failed read or
// write itself, and only Memory.Lock can hold the handle from outside.
type handle struct {
	mu sync.Mutex
}

// acquire opens the clipboard. The returned release must be called on every
// exit path, which callers do with defer.
func (h *handle) acquire() (release func(), ok bool) {
	if !h.mu.TryLock() {
		return nil, false
	}
	return h.mu.Unlock, true
}

// Truncate shortens s to at most n characters without splitting a UTF-8
// sequence.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
