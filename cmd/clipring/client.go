package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc/status"

	"go.klb.dev/clipring/internal/control"
	"go.klb.dev/clipring/internal/history"
	"go.klb.dev/clipring/internal/ipc"
	"go.klb.dev/clipring/internal/message"
)

const callTimeout = 10 * time.Second

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the history of a running monitor",
		Long: `Asks the running "clipring watch" for its history over the control socket
($CLIPRING_SOCKET overrides the socket path).`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runList(v) },
	}

	f := cmd.Flags()
	f.Bool("json", false, "output raw JSON")
	f.Int("preview-width", history.DefaultPreviewWidth, "characters of each entry to show")
	addConfigFlag(cmd)

	return cmd
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore POSITION",
		Short: "Put a history entry of a running monitor back on the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil || position < 1 {
				return fmt.Errorf("position must be a positive number, got %q", args[0])
			}
			return withClient(func(ctx context.Context, c *control.Client) error {
				return c.Restore(ctx, position)
			})
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the history of a running monitor",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(ctx context.Context, c *control.Client) error {
				return c.Clear(ctx)
			})
		},
	}
}

func runList(v *viper.Viper) error {
	var reply *message.History
	err := withClient(func(ctx context.Context, c *control.Client) (err error) {
		reply, err = c.List(ctx)
		return err
	})
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(reply, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	printHistory(os.Stdout, reply, v.GetInt("preview-width"))
	return nil
}

// withClient connects to the running monitor and runs one call against it.
// Status errors come back as plain errors carrying the monitor's message.
func withClient(call func(context.Context, *control.Client) error) error {
	if !ipc.IsRunning() {
		return fmt.Errorf("no running clipring monitor at %s", ipc.SocketPath())
	}
	c, err := control.Dial(ipc.Target())
	if err != nil {
		return fmt.Errorf("control: %w", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if err := call(ctx, c); err != nil {
		if s, ok := status.FromError(err); ok {
			return errors.New(s.Message())
		}
		return err
	}
	return nil
}

func printHistory(w io.Writer, reply *message.History, width int) {
	if len(reply.Entries) == 0 {
		fmt.Fprintf(w, "History is empty (capacity %d).\n", reply.Capacity)
		return
	}

	tw := tabwriter.NewWriter(w, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "#\tCAPTURED\tCONTENT\n")
	for _, e := range reply.Entries {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n",
			e.Position,
			e.CapturedAt.Local().Format(history.TimestampLayout),
			history.Preview(e.Content, width),
		)
	}
	_ = tw.Flush()
}
