package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipring/internal/clip"
	"go.klb.dev/clipring/internal/console"
	"go.klb.dev/clipring/internal/control"
	"go.klb.dev/clipring/internal/history"
	"go.klb.dev/clipring/internal/ipc"
	"go.klb.dev/clipring/internal/monitor"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Record clipboard history and restore entries by key",
		Long: `Polls the clipboard and records every new text snippet, most recent first.

Keys (case-insensitive, no Enter needed):
  D       display history
  1-9     put that entry back on the clipboard
  C       clear history
  Q       quit (Ctrl-C also quits)

History is cleared on every exit path.

Precedence (lowest → highest): defaults → config file → CLIPRING_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runWatch(cmd.Context(), v) },
	}

	f := cmd.Flags()
	f.Duration("interval", monitor.DefaultInterval, "clipboard poll interval")
	f.Int("capacity", history.DefaultCapacity, "number of history entries kept")
	f.Int("max-length", clip.DefaultMaxLength, "longest clipboard text kept, in characters")
	f.Int("skip-cycles", monitor.DefaultSkipCycles, "poll cycles skipped after restoring an entry")
	f.Int("preview-width", history.DefaultPreviewWidth, "characters of each entry shown by the display key")
	f.String("backend", string(clip.KindAuto), "clipboard backend: auto|system|atotto|memory")
	f.Bool("no-console", false, "don't read keys from the terminal (control socket and signals only)")
	f.Bool("no-control", false, "don't open the control socket")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

var openConsole = console.Open

type watchOptions struct {
	monitor   monitor.Config
	capacity  int
	maxLength int
	backend   clip.Kind
	noConsole bool
	noControl bool
}

func loadWatchOptions(v *viper.Viper) (watchOptions, error) {
	opts := watchOptions{
		monitor: monitor.Config{
			Interval:     v.GetDuration("interval"),
			SkipCycles:   v.GetInt("skip-cycles"),
			PreviewWidth: v.GetInt("preview-width"),
		},
		capacity:  v.GetInt("capacity"),
		maxLength: v.GetInt("max-length"),
		noConsole: v.GetBool("no-console"),
		noControl: v.GetBool("no-control"),
	}
	if err := opts.monitor.Validate(); err != nil {
		return opts, err
	}
	if opts.capacity < 1 {
		return opts, fmt.Errorf("capacity must be at least 1, got %d", opts.capacity)
	}
	if opts.maxLength < 1 {
		return opts, fmt.Errorf("max-length must be at least 1, got %d", opts.maxLength)
	}
	kind, err := clip.ParseKind(v.GetString("backend"))
	if err != nil {
		return opts, err
	}
	opts.backend = kind
	return opts, nil
}

func runWatch(ctx context.Context, v *viper.Viper) error {
	opts, err := loadWatchOptions(v)
	if err != nil {
		return err
	}

	// Refuse before touching the terminal so a second instance leaves the
	// first one's console mode alone.
	if !opts.noControl && ipc.IsRunning() {
		return fmt.Errorf("another clipring monitor is listening on %s", ipc.SocketPath())
	}

	var con *console.Console
	out, logOut := io.Writer(os.Stdout), io.Writer(os.Stderr)
	if !opts.noConsole {
		con, err = openConsole(os.Stdin)
		if err != nil {
			return fmt.Errorf("console: %w", err)
		}
		defer con.Close()
		if con.Raw() {
			out = console.CRLF(os.Stdout)
			logOut = console.CRLF(os.Stderr)
		}
	}
	setupLogging(v, logOut, con != nil)

	backend, err := clip.New(opts.backend, opts.maxLength)
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	defer backend.Close()

	store := history.New(opts.capacity)
	mon := monitor.New(backend, store, out, opts.monitor)
	if con != nil {
		mon.SetKeys(con.Keys())
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !opts.noControl {
		ln, err := ipc.Listen()
		if err != nil {
			slog.Warn("control socket unavailable", "err", err)
		} else {
			slog.Info("control socket listening", "path", ipc.SocketPath())
			go func() {
				if err := control.Serve(ctx, ln, mon); err != nil {
					slog.Warn("control socket stopped", "err", err)
				}
			}()
		}
	}

	printBanner(out, backend.Name(), store.Cap(), con != nil)
	return mon.Run(ctx)
}

func printBanner(w io.Writer, backend string, capacity int, keys bool) {
	fmt.Fprintf(w, "Clipboard monitor running (%s, %d entries).\n", backend, capacity)
	if !keys {
		fmt.Fprintln(w, `Keyboard input disabled; use "clipring list", "clipring restore N" and "clipring clear".`)
		return
	}
	fmt.Fprintln(w, "  D     display history")
	fmt.Fprintln(w, "  1-9   restore entry to clipboard")
	fmt.Fprintln(w, "  C     clear history")
	fmt.Fprintln(w, "  Q     quit (Ctrl-C also quits)")
}
