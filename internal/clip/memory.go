package clip

import "sync"

// Memory is a process-local clipboard. It stands in for the host clipboard on
// headless machines and lets tests play the part of other applications.
type Memory struct {
	h         handle
	maxLength int

	mu     sync.Mutex
	text   string
	writes int
}

// NewMemory returns an empty process-local clipboard.
func NewMemory(maxLength int) *Memory {
	if maxLength < 1 {
		maxLength = DefaultMaxLength
	}
	return &Memory{maxLength: maxLength}
}

func (m *Memory) Name() string { return "process-local clipboard" }

func (m *Memory) ReadText() (string, bool) {
	release, ok := m.h.acquire()
	if !ok {
		return "", false
	}
	defer release()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.text == "" {
		return "", false
	}
	return Truncate(m.text, m.maxLength), true
}

func (m *Memory) WriteText(text string) error {
	if text == "" {
		return ErrInvalidInput
	}
	release, ok := m.h.acquire()
	if !ok {
		return ErrUnavailable
	}
	defer release()

	m.mu.Lock()
	m.text = text
	m.writes++
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() {}

// Set replaces the contents as another application would, without counting
// as a write by this process.
func (m *Memory) Set(text string) {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
}

// Text returns the raw contents, untruncated.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes reports how many successful WriteText calls have been made.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Lock holds the clipboard open as another process would. Reads report no
// data and writes fail with ErrUnavailable until unlock is called.
func (m *Memory) Lock() (unlock func()) {
	m.h.mu.Lock()
	return m.h.mu.Unlock
}
