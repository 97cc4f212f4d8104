package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
)

// unary adapts a typed call into a grpc.MethodHandler, running the server's
// interceptor chain the same way generated code does.
func unary[Req proto.Message, Resp proto.Message](
	fullMethod string,
	newReq func() Req,
	call func(srv any, ctx context.Context, req Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
