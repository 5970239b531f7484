// Package console reads single keystrokes from the terminal without waiting
// for Enter. While the terminal is in raw mode the kernel no longer turns
// "\n" into "\r\n", so output meant for the same terminal must go through CRLF.
package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// KeyInterrupt is the byte a raw terminal delivers for Ctrl-C.
const KeyInterrupt = '\x03'

const keyBuffer = 16

// Console owns the terminal for the lifetime of the monitor.
type Console struct {
	fd    int
	state *term.State
	keys  chan rune
}

// Open starts reading keys from in. If in is a terminal it is switched to raw
// mode; Close restores it. A failure to enter raw mode is returned since the
// key bindings cannot work without it.
func Open(in *os.File) (*Console, error) {
	c := &Console{
		fd:   int(in.Fd()),
		keys: make(chan rune, keyBuffer),
	}
	if term.IsTerminal(c.fd) {
		state, err := term.MakeRaw(c.fd)
		if err != nil {
			return nil, fmt.Errorf("raw mode: %w", err)
		}
		c.state = state
	}
	go c.read(in)
	return c, nil
}

// Raw reports whether the terminal was switched to raw mode.
func (c *Console) Raw() bool { return c.state != nil }

// Keys returns the channel of key presses. It is closed when input ends.
func (c *Console) Keys() <-chan rune { return c.keys }

// Close restores the terminal. It does not stop the reader goroutine, which
// stays blocked on stdin until the process exits.
func (c *Console) Close() error {
	if c.state == nil {
		return nil
	}
	err := term.Restore(c.fd, c.state)
	c.state = nil
	return err
}

// read forwards keys without ever blocking on a slow consumer; keys typed
// faster than the monitor polls beyond the buffer are dropped.
func (c *Console) read(in io.Reader) {
	defer close(c.keys)
	br := bufio.NewReader(in)
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			if err != io.EOF {
				slog.Debug("console read failed", "err", err)
			}
			return
		}
		if r == '\r' || r == '\n' {
			continue
		}
		select {
		case c.keys <- r:
		default:
			slog.Debug("key buffer full, dropping", "key", string(r))
		}
	}
}

type crlfWriter struct {
	w io.Writer
}

// CRLF wraps w so that every "\n" is written as "\r\n".
func CRLF(w io.Writer) io.Writer {
	return &crlfWriter{w: w}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
