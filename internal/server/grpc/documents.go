package grpc

import (
	"context"

	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/dmitrijs2005/stackquery/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ownerFields name the user who created a document. When present they must
// match the caller.
var ownerFields = []string{"authorId", "votedById"}

var collections = map[string]bool{
	docstore.Questions: true,
	docstore.Answers:   true,
	docstore.Votes:     true,
}

func checkCollection(c string) error {
	if !collections[c] {
		return rpc.WithType(codes.NotFound, TypeCollectionNotFound, "Collection with the requested ID could not be found.")
	}
	return nil
}

func checkQueries(queries []docstore.Query) error {
	for _, q := range queries {
		if err := q.Validate(); err != nil {
			return rpc.WithType(codes.InvalidArgument, TypeQueryInvalid, err.Error())
		}
	}
	return nil
}

// CreateDocument stores a document on behalf of the JWT's user.
func (s *GRPCServer) CreateDocument(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	var req rpc.CreateDocumentRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := checkCollection(req.Collection); err != nil {
		return nil, err
	}
	for _, f := range ownerFields {
		if owner, ok := req.Data[f]; ok && owner != claims.UserID {
			return nil, rpc.WithType(codes.PermissionDenied, TypeUserUnauthorized, "The current user is not authorized to perform the requested action.")
		}
	}

	doc, err := s.documents.Create(ctx, req.Collection, req.ID, req.Data)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(doc)
}

func (s *GRPCServer) GetDocument(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req rpc.GetDocumentRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := checkCollection(req.Collection); err != nil {
		return nil, err
	}
	if err := checkQueries(req.Queries); err != nil {
		return nil, err
	}

	doc, err := s.documents.Get(ctx, req.Collection, req.ID, req.Queries...)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(doc)
}

func (s *GRPCServer) ListDocuments(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req rpc.ListDocumentsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := checkCollection(req.Collection); err != nil {
		return nil, err
	}
	if err := checkQueries(req.Queries); err != nil {
		return nil, err
	}

	list, err := s.documents.List(ctx, req.Collection, req.Queries...)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(list)
}

func (s *GRPCServer) PresignAttachment(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	id, url, err := s.attachments.PresignUpload(ctx, claims.UserID)
	if err != nil {
		s.logger.Error(ctx, "presign failed", "error", err)
		return nil, status.Error(codes.Unavailable, "attachment storage unavailable")
	}
	return encode(rpc.Attachment{ID: id, URL: url})
}
