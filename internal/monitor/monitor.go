// Package monitor implements the clipboard polling loop. Each cycle handles at
// most one key press plus any queued control requests, then compares the
// clipboard with the last observed text and records changes in the history.
//
// The loop is the only owner of the history store. Other goroutines reach it
// through List, Restore and Clear, which queue a request and wait for the
// loop to answer it at its next cycle boundary.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.klb.dev/clipring/internal/clip"
	"go.klb.dev/clipring/internal/history"
)

const (
	// DefaultInterval is the time between poll cycles.
	DefaultInterval = 500 * time.Millisecond

	// DefaultSkipCycles is how many detection phases are skipped after the
	// loop writes to the clipboard itself.
	DefaultSkipCycles = 10

	requestBuffer = 8
)

// ErrStopped is returned by control calls once the loop has exited.
var ErrStopped = errors.New("monitor: stopped")

// Config holds the loop timings.
type Config struct {
	Interval     time.Duration
	SkipCycles   int
	PreviewWidth int
}

// DefaultConfig returns the standard timings.
func DefaultConfig() Config {
	return Config{
		Interval:     DefaultInterval,
		SkipCycles:   DefaultSkipCycles,
		PreviewWidth: history.DefaultPreviewWidth,
	}
}

// Validate checks that the configuration can drive a loop.
func (c Config) Validate() error {
	switch {
	case c.Interval <= 0:
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	case c.SkipCycles < 0:
		return fmt.Errorf("skip-cycles must not be negative, got %d", c.SkipCycles)
	case c.PreviewWidth < 4:
		return fmt.Errorf("preview-width must be at least 4, got %d", c.PreviewWidth)
	}
	return nil
}

// State is the lifecycle state of the loop.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// Snapshot is a copy of the history handed to control clients.
type Snapshot struct {
	Entries  []history.Entry
	Capacity int
}

// Monitor is the polling loop.
type Monitor struct {
	cfg     Config
	backend clip.Backend
	store   *history.Store
	out     io.Writer
	keys    <-chan rune

	requests chan request
	done     chan struct{}
	stopOnce sync.Once

	last     string // last observed clipboard text, independent of the history head
	haveLast bool
	skip     int
	state    State
}

// New returns a monitor in the Running state. Display output and command
// confirmations are written to out.
func New(backend clip.Backend, store *history.Store, out io.Writer, cfg Config) *Monitor {
	return &Monitor{
		cfg:      cfg,
		backend:  backend,
		store:    store,
		out:      out,
		requests: make(chan request, requestBuffer),
		done:     make(chan struct{}),
	}
}

// SetKeys attaches a key source. Without one the loop is driven only by
// control requests and cancellation.
func (m *Monitor) SetKeys(keys <-chan rune) { m.keys = keys }

// State returns the current lifecycle state.
func (m *Monitor) State() State { return m.state }

// Run polls until the quit command or until ctx is cancelled. Both paths
// clear the history before returning.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.stop()

	slog.Info("clipboard monitor started",
		"backend", m.backend.Name(),
		"interval", m.cfg.Interval,
		"capacity", m.store.Cap(),
	)

	t := time.NewTicker(m.cfg.Interval)
	defer t.Stop()

	for {
		if ctx.Err() != nil {
			m.interrupt()
			return nil
		}
		if m.Step() == Terminated {
			return nil
		}
		select {
		case <-ctx.Done():
			m.interrupt()
			return nil
		case <-t.C:
		}
	}
}

// Step runs the input and detection phases of one cycle without waiting.
func (m *Monitor) Step() State {
	if m.state == Terminated {
		return m.state
	}
	m.input()
	if m.state == Terminated {
		return m.state
	}
	m.detect()
	return m.state
}

func (m *Monitor) input() {
	for drained := false; !drained; {
		select {
		case req := <-m.requests:
			m.serve(req)
		default:
			drained = true
		}
	}

	select {
	case r, ok := <-m.keys:
		if !ok {
			slog.Debug("console input closed")
			m.keys = nil
			return
		}
		m.dispatch(r)
	default:
	}
}

func (m *Monitor) dispatch(r rune) {
	cmd, position := ParseKey(r)
	switch cmd {
	case CmdDisplay:
		m.display()
	case CmdRestore:
		if err := m.restore(position); err != nil {
			if errors.Is(err, history.ErrNotFound) {
				slog.Debug("restore ignored", "position", position, "size", m.store.Len())
				return
			}
			slog.Warn("restore failed", "position", position, "err", err)
		}
	case CmdClear:
		m.clear()
	case CmdQuit:
		m.quit()
	default:
		slog.Debug("unbound key", "key", fmt.Sprintf("%q", r))
	}
}

func (m *Monitor) detect() {
	if m.skip > 0 {
		m.skip--
		slog.Debug("detection skipped after own write", "remaining", m.skip)
		return
	}

	text, ok := m.backend.ReadText()
	if !ok {
		return
	}
	if m.haveLast && text == m.last {
		return
	}
	m.last, m.haveLast = text, true

	inserted, err := m.store.TryInsert(text)
	if err != nil {
		slog.Warn("capture rejected", "err", err)
		return
	}
	if !inserted {
		slog.Debug("capture matches history head, suppressed")
		return
	}
	logCapture(text, m.store.Len(), m.store.Cap())
}

func (m *Monitor) display() {
	for _, line := range m.store.Render(m.cfg.PreviewWidth) {
		fmt.Fprintln(m.out, line)
	}
}

func (m *Monitor) restore(position int) error {
	e, err := m.store.Get(position - 1)
	if err != nil {
		return err
	}
	if err := m.backend.WriteText(e.Content); err != nil {
		return fmt.Errorf("restore entry %d: %w", position, err)
	}
	m.skip = m.cfg.SkipCycles
	fmt.Fprintf(m.out, "Restored entry %d to clipboard.\n", position)
	slog.Info("entry restored", "position", position, "length", len(e.Content))
	return nil
}

func (m *Monitor) clear() {
	m.store.Clear()
	m.skip = 0
	fmt.Fprintln(m.out, "History cleared.")
	slog.Info("history cleared")
}

func (m *Monitor) quit() {
	m.store.Clear()
	m.state = Terminated
	fmt.Fprintln(m.out, "Exiting clipboard monitor...")
}

func (m *Monitor) interrupt() {
	slog.Debug("monitor interrupted")
	m.quit()
}

// stop releases the loop's working state and fails any control call still
// waiting for an answer.
func (m *Monitor) stop() {
	m.last, m.haveLast = "", false
	m.skip = 0
	m.stopOnce.Do(func() { close(m.done) })
	slog.Info("clipboard monitor stopped")
}
