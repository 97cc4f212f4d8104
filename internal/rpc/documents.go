package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// DocumentsServer is implemented by the server side of stackquery.Documents.
// Writes and presigning require a JWT in the x-jwt header.
type DocumentsServer interface {
	CreateDocument(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDocument(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListDocuments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PresignAttachment(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

var DocumentsServiceDesc = grpc.ServiceDesc{
	ServiceName: DocumentsServiceName,
	HandlerType: (*DocumentsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateDocument",
			Handler: unary(DocumentsCreate, newStruct, func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.(DocumentsServer).CreateDocument(ctx, in)
			}),
		},
		{
			MethodName: "GetDocument",
			Handler: unary(DocumentsGet, newStruct, func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.(DocumentsServer).GetDocument(ctx, in)
			}),
		},
		{
			MethodName: "ListDocuments",
			Handler: unary(DocumentsList, newStruct, func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.(DocumentsServer).ListDocuments(ctx, in)
			}),
		},
		{
			MethodName: "PresignAttachment",
			Handler: unary(DocumentsPresignUpload, newEmpty, func(srv any, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
				return srv.(DocumentsServer).PresignAttachment(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "stackquery/documents",
}

func RegisterDocumentsServer(s grpc.ServiceRegistrar, srv DocumentsServer) {
	s.RegisterService(&DocumentsServiceDesc, srv)
}

type DocumentsClient struct {
	cc grpc.ClientConnInterface
}

func NewDocumentsClient(cc grpc.ClientConnInterface) *DocumentsClient {
	return &DocumentsClient{cc: cc}
}

func (c *DocumentsClient) invoke(ctx context.Context, method string, in any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DocumentsClient) CreateDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DocumentsCreate, in, opts...)
}

func (c *DocumentsClient) GetDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DocumentsGet, in, opts...)
}

func (c *DocumentsClient) ListDocuments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DocumentsList, in, opts...)
}

func (c *DocumentsClient) PresignAttachment(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DocumentsPresignUpload, &emptypb.Empty{}, opts...)
}
