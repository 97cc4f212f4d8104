// Package grpc serves the session gateway and the document store over
// gRPC using the hand-written service descriptors in internal/rpc.
package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/dmitrijs2005/stackquery/internal/logging"
	"github.com/dmitrijs2005/stackquery/internal/rpc"
	"github.com/dmitrijs2005/stackquery/internal/server/auth"
	"github.com/dmitrijs2005/stackquery/internal/server/models"
	"google.golang.org/grpc"
)

type accountService interface {
	CreateUser(ctx context.Context, id, name, email, password string) (*models.User, error)
	CreateEmailPasswordSession(ctx context.Context, email, password string) (*models.Session, error)
	GetSession(ctx context.Context, secret string) (*models.Session, error)
	GetUser(ctx context.Context, secret string) (*models.User, error)
	UpdatePrefs(ctx context.Context, secret string, prefs map[string]any) (*models.User, error)
	DeleteSessions(ctx context.Context, secret string) error
	CreateJWT(ctx context.Context, secret string) (string, error)
	VerifyJWT(token string) (*auth.Claims, error)
}

type attachmentPresigner interface {
	PresignUpload(ctx context.Context, userID string) (id, url string, err error)
}

// GRPCServer implements both rpc.GatewayServer and rpc.DocumentsServer.
type GRPCServer struct {
	address     string
	accounts    accountService
	documents   docstore.Store
	attachments attachmentPresigner
	logger      logging.Logger
}

var (
	_ rpc.GatewayServer   = (*GRPCServer)(nil)
	_ rpc.DocumentsServer = (*GRPCServer)(nil)
)

func NewGRPCServer(address string, l logging.Logger, accounts accountService, documents docstore.Store, attachments attachmentPresigner) *GRPCServer {
	return &GRPCServer{
		address:     address,
		logger:      l.With("module", "grpc_server"),
		accounts:    accounts,
		documents:   documents,
		attachments: attachments,
	}
}

// NewServer builds a grpc.Server with the interceptor chain and both
// services registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	rpc.RegisterGatewayServer(srv, s)
	rpc.RegisterDocumentsServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}

	return nil
}
