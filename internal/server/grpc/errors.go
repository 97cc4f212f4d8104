package grpc

import (
	"errors"

	"github.com/dmitrijs2005/stackquery/internal/common"
	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/dmitrijs2005/stackquery/internal/rpc"
	"github.com/dmitrijs2005/stackquery/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error types sent to clients in status details.
const (
	TypeUserAlreadyExists     = "user_already_exists"
	TypePasswordInvalid       = "password_invalid"
	TypeArgumentInvalid       = "general_argument_invalid"
	TypeInvalidCredentials    = "user_invalid_credentials"
	TypeSessionNotFound       = "user_session_not_found"
	TypeUnauthorizedScope     = "general_unauthorized_scope"
	TypeDocumentNotFound      = "document_not_found"
	TypeDocumentAlreadyExists = "document_already_exists"
	TypeCollectionNotFound    = "collection_not_found"
	TypeQueryInvalid          = "general_query_invalid"
	TypeUserUnauthorized      = "user_unauthorized"
)

// toStatus maps domain errors to status errors. Anything unexpected becomes
// a bare Internal so no detail leaks.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrUserAlreadyExists):
		return rpc.WithType(codes.AlreadyExists, TypeUserAlreadyExists, "A user with the same id or email already exists.")
	case errors.Is(err, services.ErrPasswordInvalid):
		return rpc.WithType(codes.InvalidArgument, TypePasswordInvalid, "Password must be at least 8 characters.")
	case errors.Is(err, services.ErrEmailInvalid):
		return rpc.WithType(codes.InvalidArgument, TypeArgumentInvalid, "Email is not valid.")
	case errors.Is(err, services.ErrInvalidCredentials):
		return rpc.WithType(codes.Unauthenticated, TypeInvalidCredentials, "Invalid credentials. Please check the email and password.")
	case errors.Is(err, services.ErrSessionNotFound):
		return rpc.WithType(codes.Unauthenticated, TypeUnauthorizedScope, "No active session.")
	case errors.Is(err, docstore.ErrNotFound):
		return rpc.WithType(codes.NotFound, TypeDocumentNotFound, "Document with the requested ID could not be found.")
	case errors.Is(err, common.ErrAlreadyExists):
		return rpc.WithType(codes.AlreadyExists, TypeDocumentAlreadyExists, "Document with the requested ID already exists.")
	default:
		return status.Error(codes.Internal, common.ErrInternal.Error())
	}
}
