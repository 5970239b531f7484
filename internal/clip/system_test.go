package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubWrite(t *testing.T, fn func([]byte) <-chan struct{}) {
	t.Helper()
	prev := writeText
	writeText = fn
	t.Cleanup(func() { writeText = prev })
}

func TestSystemWriteFailureIsUnavailable(t *testing.T) {
	var calls int
	stubWrite(t, func([]byte) <-chan struct{} {
		calls++
		return nil
	})

	b := &systemBackend{maxLength: DefaultMaxLength}
	assert.ErrorIs(t, b.WriteText("text"), ErrUnavailable)
	assert.Equal(t, 1, calls)

	// The handle was released on the failure path.
	release, ok := b.h.acquire()
	require.True(t, ok)
	release()
}

func TestSystemWriteSuccess(t *testing.T) {
	var got []byte
	stubWrite(t, func(data []byte) <-chan struct{} {
		got = data
		return make(chan struct{})
	})

	b := &systemBackend{maxLength: DefaultMaxLength}
	require.NoError(t, b.WriteText("copied"))
	assert.Equal(t, "copied", string(got))
}

func TestSystemWriteEmpty(t *testing.T) {
	stubWrite(t, func([]byte) <-chan struct{} {
		t.Fatal("empty text must not reach the clipboard")
		return nil
	})

	b := &systemBackend{maxLength: DefaultMaxLength}
	assert.ErrorIs(t, b.WriteText(""), ErrInvalidInput)
}

func TestSystemWriteWhileHeld(t *testing.T) {
	stubWrite(t, func([]byte) <-chan struct{} {
		t.Fatal("a held clipboard must not be written")
		return nil
	})

	b := &systemBackend{maxLength: DefaultMaxLength}
	release, ok := b.h.acquire()
	require.True(t, ok)
	defer release()
	assert.ErrorIs(t, b.WriteText("text"), ErrUnavailable)
}
