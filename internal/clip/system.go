package clip

import (
	"fmt"

	"golang.design/x/clipboard"
)

// writeText is clipboard.Write for text. The library signals a failed write
// (clipboard held by another application) with a nil channel.
var writeText = func(data []byte) <-chan struct{} {
	return clipboard.Write(clipboard.FmtText, data)
}

type systemBackend struct {
	h         handle
	maxLength int
}

// NewSystem returns the native clipboard backend. clipboard.Init is called
// here rather than in init() so that sub-commands which never touch the
// clipboard don't fail on headless systems.
func NewSystem(maxLength int) (Backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard init: %w", err)
	}
	return &systemBackend{maxLength: maxLength}, nil
}

func (b *systemBackend) Name() string { return "native clipboard" }

func (b *systemBackend) ReadText() (string, bool) {
	release, ok := b.h.acquire()
	if !ok {
		return "", false
	}
	defer release()

	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return "", false
	}
	return Truncate(string(data), b.maxLength), true
}

func (b *systemBackend) WriteText(text string) error {
	if text == "" {
		return ErrInvalidInput
	}
	release, ok := b.h.acquire()
	if !ok {
		return ErrUnavailable
	}
	defer release()

	if writeText([]byte(text)) == nil {
		return ErrUnavailable
	}
	return nil
}

func (b *systemBackend) Close() {}
