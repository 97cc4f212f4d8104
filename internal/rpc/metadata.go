package rpc

import (
	"context"

	"github.com/dmitrijs2005/stackquery/internal/common"
	"google.golang.org/grpc/metadata"
)

func withHeader(ctx context.Context, key, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(key)
	if value != "" {
		md.Set(key, value)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// WithSession attaches the session secret to outgoing calls.
func WithSession(ctx context.Context, secret string) context.Context {
	return withHeader(ctx, common.SessionHeaderName, secret)
}

// WithJWT attaches the bearer JWT to outgoing calls.
func WithJWT(ctx context.Context, token string) context.Context {
	return withHeader(ctx, common.JWTHeaderName, token)
}

func incoming(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

func SessionFromIncoming(ctx context.Context) string {
	return incoming(ctx, common.SessionHeaderName)
}

func JWTFromIncoming(ctx context.Context) string {
	return incoming(ctx, common.JWTHeaderName)
}
