package monitor

import (
	"context"
	"log/slog"

	"go.klb.dev/clipring/internal/history"
)

const logPreview = 120

// logCapture logs a new history entry at INFO (length, history size) and at
// DEBUG a preview of up to 120 characters.
func logCapture(text string, size, capacity int) {
	slog.Info("clipboard captured", "length", len(text), "size", size, "capacity", capacity)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	slog.Debug("clipboard item", "preview", history.Preview(text, logPreview))
}
