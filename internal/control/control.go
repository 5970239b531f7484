// Package control serves the Control gRPC service on the local socket. Each
// call is handed to the monitor loop and answered once the loop has handled
// it. Bodies travel as JSON through the wire codec, so the service is
// declared by hand instead of generated from a .proto file.
package control

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.klb.dev/clipring/internal/clip"
	"go.klb.dev/clipring/internal/history"
	"go.klb.dev/clipring/internal/message"
	"go.klb.dev/clipring/internal/monitor"
)

const requestTimeout = 5 * time.Second

// Handler is the monitor surface the socket exposes. *monitor.Monitor
// satisfies it.
type Handler interface {
	List(ctx context.Context) (monitor.Snapshot, error)
	Restore(ctx context.Context, position int) error
	Clear(ctx context.Context) error
}

// Serve answers Control calls on ln until ctx is cancelled or ln fails.
// Cancellation drains in-flight calls before Serve returns. ln is closed on
// return.
func Serve(ctx context.Context, ln net.Listener, h Handler) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(logCalls))
	srv.RegisterService(&serviceDesc, &service{h: h})

	stop := context.AfterFunc(ctx, srv.GracefulStop)
	defer stop()

	err := srv.Serve(ln)
	if ctx.Err() != nil && (err == nil || errors.Is(err, grpc.ErrServerStopped)) {
		return nil
	}
	return err
}

func logCalls(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := next(ctx, req)
	slog.Debug("control call",
		"method", info.FullMethod,
		"code", status.Code(err),
		"elapsed", time.Since(start),
	)
	return resp, err
}

type service struct {
	h Handler
}

func (s *service) List(ctx context.Context, _ *message.ListRequest) (*message.History, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	snap, err := s.h.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return message.NewHistory(snap.Entries, snap.Capacity), nil
}

func (s *service) Restore(ctx context.Context, req *message.RestoreRequest) (*message.Empty, error) {
	if req.Position < 1 {
		return nil, status.Errorf(codes.InvalidArgument, "position must be at least 1, got %d", req.Position)
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := s.h.Restore(ctx, req.Position); err != nil {
		return nil, toStatus(err)
	}
	return &message.Empty{}, nil
}

func (s *service) Clear(ctx context.Context, _ *message.ClearRequest) (*message.Empty, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := s.h.Clear(ctx); err != nil {
		return nil, toStatus(err)
	}
	return &message.Empty{}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, history.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, clip.ErrUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, monitor.ErrStopped), errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
