package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// GatewayServer is implemented by the server side of stackquery.Gateway.
// Calls that act on the current session read its secret from the x-session
// header.
type GatewayServer interface {
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateEmailPasswordSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSession(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetUser(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	UpdatePrefs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteSessions(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	CreateJWT(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

func newStruct() *structpb.Struct { return new(structpb.Struct) }
func newEmpty() *emptypb.Empty    { return new(emptypb.Empty) }

var GatewayServiceDesc = grpc.ServiceDesc{
	ServiceName: GatewayServiceName,
	HandlerType: (*GatewayServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateUser",
			Handler: unary(GatewayCreateUser, newStruct, func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.(GatewayServer).CreateUser(ctx, in)
			}),
		},
		{
			MethodName: "CreateEmailPasswordSession",
			Handler: unary(GatewayCreateSession, newStruct, func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.(GatewayServer).CreateEmailPasswordSession(ctx, in)
			}),
		},
		{
			MethodName: "GetSession",
			Handler: unary(GatewayGetSession, newEmpty, func(srv any, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
				return srv.(GatewayServer).GetSession(ctx, in)
			}),
		},
		{
			MethodName: "GetUser",
			Handler: unary(GatewayGetUser, newEmpty, func(srv any, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
				return srv.(GatewayServer).GetUser(ctx, in)
			}),
		},
		{
			MethodName: "UpdatePrefs",
			Handler: unary(GatewayUpdatePrefs, newStruct, func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.(GatewayServer).UpdatePrefs(ctx, in)
			}),
		},
		{
			MethodName: "DeleteSessions",
			Handler: unary(GatewayDeleteSessions, newEmpty, func(srv any, ctx context.Context, in *emptypb.Empty) (*emptypb.Empty, error) {
				return srv.(GatewayServer).DeleteSessions(ctx, in)
			}),
		},
		{
			MethodName: "CreateJWT",
			Handler: unary(GatewayCreateJWT, newEmpty, func(srv any, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
				return srv.(GatewayServer).CreateJWT(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "stackquery/gateway",
}

func RegisterGatewayServer(s grpc.ServiceRegistrar, srv GatewayServer) {
	s.RegisterService(&GatewayServiceDesc, srv)
}

// GatewayClient is the client stub for stackquery.Gateway.
type GatewayClient struct {
	cc grpc.ClientConnInterface
}

func NewGatewayClient(cc grpc.ClientConnInterface) *GatewayClient {
	return &GatewayClient{cc: cc}
}

func (c *GatewayClient) CreateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GatewayCreateUser, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GatewayClient) CreateEmailPasswordSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GatewayCreateSession, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GatewayClient) GetSession(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GatewayGetSession, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GatewayClient) GetUser(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GatewayGetUser, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GatewayClient) UpdatePrefs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GatewayUpdatePrefs, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GatewayClient) DeleteSessions(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, GatewayDeleteSessions, &emptypb.Empty{}, new(emptypb.Empty), opts...)
}

func (c *GatewayClient) CreateJWT(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GatewayCreateJWT, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
