package control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"go.klb.dev/clipring/internal/message"
	"go.klb.dev/clipring/internal/wire"
)

// Client calls the Control service of a running monitor. Errors are gRPC
// status errors; status.Code tells them apart.
type Client struct {
	conn *grpc.ClientConn
}

// Dial creates a client for target, usually ipc.Target(). The connection is
// made lazily on the first call.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(wire.Name)),
	}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// List returns the monitor's history, most recent entry first.
func (c *Client) List(ctx context.Context) (*message.History, error) {
	out := new(message.History)
	if err := c.conn.Invoke(ctx, methodList, &message.ListRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Restore puts the entry at the 1-based position back on the clipboard.
func (c *Client) Restore(ctx context.Context, position int) error {
	return c.conn.Invoke(ctx, methodRestore, &message.RestoreRequest{Position: position}, new(message.Empty))
}

// Clear empties the monitor's history.
func (c *Client) Clear(ctx context.Context) error {
	return c.conn.Invoke(ctx, methodClear, &message.ClearRequest{}, new(message.Empty))
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
