// Package documents is the CLI's gRPC implementation of docstore.Store.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/stackquery/internal/common"
	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/dmitrijs2005/stackquery/internal/netx"
	"github.com/dmitrijs2005/stackquery/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// TokenSource supplies the JWT sent with every call. The session store
// implements it.
type TokenSource interface {
	Token() string
	RefreshToken(ctx context.Context) (string, error)
}

type GRPCStore struct {
	conn   *grpc.ClientConn
	client *rpc.DocumentsClient
	tokens TokenSource
	http   *http.Client
}

var _ docstore.Store = (*GRPCStore)(nil)

func NewGRPCStore(endpointURL string, tokens TokenSource, opts ...grpc.DialOption) (*GRPCStore, error) {
	s := &GRPCStore{tokens: tokens, http: http.DefaultClient}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.jwtInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	s.client = rpc.NewDocumentsClient(conn)
	return s, nil
}

func (s *GRPCStore) Close() error {
	return s.conn.Close()
}

// jwtInterceptor sends the current JWT. When the server reports it expired
// the token is refreshed once and the call retried.
func (s *GRPCStore) jwtInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	token := s.tokens.Token()

	err := invoker(rpc.WithJWT(ctx, token), method, req, reply, cc, opts...)
	if err == nil || token == "" {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}

	token, refreshErr := s.tokens.RefreshToken(ctx)
	if refreshErr != nil {
		return err
	}

	return invoker(rpc.WithJWT(ctx, token), method, req, reply, cc, opts...)
}

func (s *GRPCStore) Create(ctx context.Context, collection, id string, fields map[string]any) (*docstore.Document, error) {
	req, err := rpc.Encode(rpc.CreateDocumentRequest{Collection: collection, ID: id, Data: fields})
	if err != nil {
		return nil, err
	}
	resp, err := s.client.CreateDocument(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeDocument(resp)
}

func (s *GRPCStore) Get(ctx context.Context, collection, id string, queries ...docstore.Query) (*docstore.Document, error) {
	req, err := rpc.Encode(rpc.GetDocumentRequest{Collection: collection, ID: id, Queries: queries})
	if err != nil {
		return nil, err
	}
	resp, err := s.client.GetDocument(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeDocument(resp)
}

func (s *GRPCStore) List(ctx context.Context, collection string, queries ...docstore.Query) (*docstore.DocumentList, error) {
	req, err := rpc.Encode(rpc.ListDocumentsRequest{Collection: collection, Queries: queries})
	if err != nil {
		return nil, err
	}
	resp, err := s.client.ListDocuments(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	var out docstore.DocumentList
	if err := rpc.Decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAttachment asks the server for a presigned URL, uploads body to it
// and returns the attachment id to store on the question.
func (s *GRPCStore) UploadAttachment(ctx context.Context, body io.Reader, size int64, contentType string) (string, error) {
	resp, err := s.client.PresignAttachment(ctx)
	if err != nil {
		return "", mapError(err)
	}
	var a rpc.Attachment
	if err := rpc.Decode(resp, &a); err != nil {
		return "", err
	}
	if err := netx.UploadToPresignedURL(ctx, s.http, a.URL, contentType, body, size); err != nil {
		return "", fmt.Errorf("upload attachment: %w", err)
	}
	return a.ID, nil
}

func decodeDocument(resp *structpb.Struct) (*docstore.Document, error) {
	var d docstore.Document
	if err := rpc.Decode(resp, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", st.Message(), docstore.ErrNotFound)
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
