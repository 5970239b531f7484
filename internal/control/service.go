package control

import (
	"context"

	"google.golang.org/grpc"

	"go.klb.dev/clipring/internal/message"
)

const (
	serviceName = "clipring.v1.Control"

	methodList    = "/" + serviceName + "/List"
	methodRestore = "/" + serviceName + "/Restore"
	methodClear   = "/" + serviceName + "/Clear"
)

type controlServer interface {
	List(context.Context, *message.ListRequest) (*message.History, error)
	Restore(context.Context, *message.RestoreRequest) (*message.Empty, error)
	Clear(context.Context, *message.ClearRequest) (*message.Empty, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*controlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: listHandler},
		{MethodName: "Restore", Handler: restoreHandler},
		{MethodName: "Clear", Handler: clearHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clipring/control",
}

func listHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.ListRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(controlServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodList}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(controlServer).List(ctx, req.(*message.ListRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func restoreHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.RestoreRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(controlServer).Restore(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRestore}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(controlServer).Restore(ctx, req.(*message.RestoreRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func clearHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.ClearRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(controlServer).Clear(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodClear}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(controlServer).Clear(ctx, req.(*message.ClearRequest))
	}
	return interceptor(ctx, in, info, handler)
}
