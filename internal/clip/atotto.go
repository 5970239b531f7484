package clip

import (
	"errors"
	"fmt"
	"log/slog"

	atotto "github.com/atotto/clipboard"
)

type atottoBackend struct {
	h         handle
	maxLength int
}

// NewAtotto returns a backend that shells out to the platform clipboard
// helpers (pbcopy/pbpaste, xclip, xsel, wl-clipboard, or the win32 API).
func NewAtotto(maxLength int) (Backend, error) {
	if atotto.Unsupported {
		return nil, errors.New("no clipboard helper found (install xclip, xsel or wl-clipboard)")
	}
	return &atottoBackend{maxLength: maxLength}, nil
}

func (b *atottoBackend) Name() string { return "clipboard helper" }

func (b *atottoBackend) ReadText() (string, bool) {
	release, ok := b.h.acquire()
	if !ok {
		return "", false
	}
	defer release()

	text, err := atotto.ReadAll()
	if err != nil {
		slog.Debug("clipboard helper read failed", "err", err)
		return "", false
	}
	if text == "" {
		return "", false
	}
	return Truncate(text, b.maxLength), true
}

func (b *atottoBackend) WriteText(text string) error {
	if text == "" {
		return ErrInvalidInput
	}
	release, ok := b.h.acquire()
	if !ok {
		return ErrUnavailable
	}
	defer release()

	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (b *atottoBackend) Close() {}
