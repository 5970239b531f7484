package monitor

import (
	"context"
	"fmt"
)

type op int

const (
	opList op = iota
	opRestore
	opClear
)

type request struct {
	op       op
	position int
	reply    chan response
}

type response struct {
	snapshot Snapshot
	err      error
}

// List returns a copy of the history.
func (m *Monitor) List(ctx context.Context) (Snapshot, error) {
	resp, err := m.submit(ctx, request{op: opList})
	if err != nil {
		return Snapshot{}, err
	}
	return resp.snapshot, resp.err
}

// Restore writes the entry at the 1-based position back to the clipboard.
// Unlike the key binding, an out-of-range position is reported as an error
// wrapping history.ErrNotFound.
func (m *Monitor) Restore(ctx context.Context, position int) error {
	resp, err := m.submit(ctx, request{op: opRestore, position: position})
	if err != nil {
		return err
	}
	return resp.err
}

// Clear empties the history.
func (m *Monitor) Clear(ctx context.Context) error {
	resp, err := m.submit(ctx, request{op: opClear})
	if err != nil {
		return err
	}
	return resp.err
}

func (m *Monitor) submit(ctx context.Context, req request) (response, error) {
	req.reply = make(chan response, 1)
	select {
	case m.requests <- req:
	case <-m.done:
		return response{}, ErrStopped
	case <-ctx.Done():
		return response{}, ctx.Err()
	}

	select {
	case resp := <-req.reply:
		return resp, nil
	case <-m.done:
		// The loop may have answered just before it stopped.
		select {
		case resp := <-req.reply:
			return resp, nil
		default:
			return response{}, ErrStopped
		}
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

// serve answers one control request on the loop goroutine.
func (m *Monitor) serve(req request) {
	var resp response
	switch req.op {
	case opList:
		resp.snapshot = Snapshot{Entries: m.store.Entries(), Capacity: m.store.Cap()}
	case opRestore:
		resp.err = m.restore(req.position)
	case opClear:
		m.clear()
	default:
		resp.err = fmt.Errorf("unknown request %d", req.op)
	}
	req.reply <- resp
}
