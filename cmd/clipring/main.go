// clipring: clipboard history in the terminal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/clipring/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipring",
		Short: "Clipboard history in the terminal",
		Long: `clipring watches the system clipboard, keeps the last few distinct text
snippets in memory, and puts any of them back on the clipboard with a single
key press.

Run "clipring watch" in a terminal. While it runs, "clipring list",
"clipring restore N" and "clipring clear" control it from another shell.
History lives only in memory and is discarded when the monitor exits.

Config file search order (first found wins):
  /etc/clipring/clipring.toml
  $HOME/.config/clipring/clipring.toml
  path supplied via --config

All flags can be set via CLIPRING_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newWatchCmd(),
		newListCmd(),
		newRestoreCmd(),
		newClearCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipring %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed. The
// interactive console keeps quiet below WARN so log lines don't break up the
// history display.
func resolveLogging(w, tty io.Writer, interactive, verbose bool, formatStr, levelStr string) {
	format := logging.Resolve(logging.ParseFormat(formatStr), tty)
	def := slog.LevelInfo
	if interactive {
		def = slog.LevelWarn
	}
	level := logging.ParseLevel(levelStr, def)
	if verbose {
		level = slog.LevelDebug
	}
	logging.Setup(w, format, level)
}
