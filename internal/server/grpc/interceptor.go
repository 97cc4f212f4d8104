package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/stackquery/internal/common"
	"github.com/dmitrijs2005/stackquery/internal/rpc"
	"github.com/dmitrijs2005/stackquery/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// jwtMethods need a valid, unexpired JWT.
var jwtMethods = map[string]bool{
	rpc.DocumentsCreate:        true,
	rpc.DocumentsPresignUpload: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !jwtMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	token := rpc.JWTFromIncoming(ctx)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := s.accounts.VerifyJWT(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, claimsKey, claims), req)
}

func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "rpc failed", append(args, "error", err)...)
	} else {
		s.logger.Debug(ctx, "rpc", args...)
	}
	return resp, err
}
