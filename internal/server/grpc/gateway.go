package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/stackquery/internal/rpc"
	"github.com/dmitrijs2005/stackquery/internal/server/models"
	"github.com/dmitrijs2005/stackquery/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func toRPCUser(u *models.User) rpc.User {
	prefs := u.Prefs
	if prefs == nil {
		prefs = map[string]any{}
	}
	return rpc.User{ID: u.ID, Name: u.Name, Email: u.Email, Prefs: prefs, CreatedAt: u.CreatedAt}
}

func toRPCSession(sess *models.Session) rpc.Session {
	return rpc.Session{ID: sess.ID, UserID: sess.UserID, Secret: sess.Secret, CreatedAt: sess.CreatedAt, ExpiresAt: sess.ExpiresAt}
}

func encode(v any) (*structpb.Struct, error) {
	s, err := rpc.Encode(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

func decode(in *structpb.Struct, v any) error {
	if err := rpc.Decode(in, v); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func (s *GRPCServer) CreateUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req rpc.CreateUserRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	u, err := s.accounts.CreateUser(ctx, req.ID, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return encode(toRPCUser(u))
}

func (s *GRPCServer) CreateEmailPasswordSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req rpc.CreateSessionRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	sess, err := s.accounts.CreateEmailPasswordSession(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(toRPCSession(sess))
}

// GetSession reports a missing or expired session as NotFound so clients
// can tell "signed out" apart from a failure.
func (s *GRPCServer) GetSession(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	sess, err := s.accounts.GetSession(ctx, rpc.SessionFromIncoming(ctx))
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			return nil, rpc.WithType(codes.NotFound, TypeSessionNotFound, "The current user session could not be found.")
		}
		return nil, toStatus(err)
	}
	return encode(toRPCSession(sess))
}

func (s *GRPCServer) GetUser(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	u, err := s.accounts.GetUser(ctx, rpc.SessionFromIncoming(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(toRPCUser(u))
}

func (s *GRPCServer) UpdatePrefs(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req rpc.UpdatePrefsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	u, err := s.accounts.UpdatePrefs(ctx, rpc.SessionFromIncoming(ctx), req.Prefs)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(toRPCUser(u))
}

func (s *GRPCServer) DeleteSessions(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.accounts.DeleteSessions(ctx, rpc.SessionFromIncoming(ctx)); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) CreateJWT(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	token, err := s.accounts.CreateJWT(ctx, rpc.SessionFromIncoming(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(rpc.JWT{JWT: token})
}
