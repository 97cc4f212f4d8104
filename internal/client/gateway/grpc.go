package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/stackquery/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const typeSessionNotFound = "user_session_not_found"

// GRPCGateway talks to stackquery.Gateway. The session secret lives in the
// jar and is attached to every call by an interceptor.
type GRPCGateway struct {
	conn   *grpc.ClientConn
	client *rpc.GatewayClient
	jar    SecretJar

	mu     sync.Mutex
	secret string
	loaded bool
}

// NewGRPCGateway connects to endpointURL. Extra dial options are appended
// after the defaults.
func NewGRPCGateway(endpointURL string, jar SecretJar, opts ...grpc.DialOption) (*GRPCGateway, error) {
	g := &GRPCGateway{jar: jar}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(g.sessionInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	g.conn = conn
	g.client = rpc.NewGatewayClient(conn)
	return g, nil
}

func (g *GRPCGateway) Close() error {
	return g.conn.Close()
}

// Conn exposes the connection so other services on the same server can
// share it.
func (g *GRPCGateway) Conn() *grpc.ClientConn {
	return g.conn
}

func (g *GRPCGateway) currentSecret(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.loaded {
		return g.secret, nil
	}
	s, err := g.jar.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load session secret: %w", err)
	}
	g.secret, g.loaded = s, true
	return s, nil
}

func (g *GRPCGateway) setSecret(ctx context.Context, secret string) error {
	g.mu.Lock()
	g.secret, g.loaded = secret, true
	g.mu.Unlock()

	if secret == "" {
		return g.jar.Clear(ctx)
	}
	return g.jar.Save(ctx, secret)
}

func (g *GRPCGateway) sessionInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	secret, err := g.currentSecret(ctx)
	if err != nil {
		return err
	}
	return invoker(rpc.WithSession(ctx, secret), method, req, reply, cc, opts...)
}

func (g *GRPCGateway) GetSession(ctx context.Context) (*Session, error) {
	secret, err := g.currentSecret(ctx)
	if err != nil {
		return nil, err
	}
	if secret == "" {
		return nil, nil
	}

	resp, err := g.client.GetSession(ctx)
	if err != nil {
		if isSessionGone(err) {
			if err := g.setSecret(ctx, ""); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, g.mapError(err)
	}

	var s Session
	if err := rpc.Decode(resp, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *GRPCGateway) GetUser(ctx context.Context) (*User, error) {
	resp, err := g.client.GetUser(ctx)
	if err != nil {
		return nil, g.mapError(err)
	}
	return decodeUser(resp)
}

func (g *GRPCGateway) CreateJWT(ctx context.Context) (string, error) {
	resp, err := g.client.CreateJWT(ctx)
	if err != nil {
		return "", g.mapError(err)
	}
	var out rpc.JWT
	if err := rpc.Decode(resp, &out); err != nil {
		return "", err
	}
	return out.JWT, nil
}

func (g *GRPCGateway) CreateEmailPasswordSession(ctx context.Context, email, password string) (*Session, error) {
	req, err := rpc.Encode(rpc.CreateSessionRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	resp, err := g.client.CreateEmailPasswordSession(ctx, req)
	if err != nil {
		return nil, g.mapError(err)
	}

	var s rpc.Session
	if err := rpc.Decode(resp, &s); err != nil {
		return nil, err
	}
	if err := g.setSecret(ctx, s.Secret); err != nil {
		return nil, fmt.Errorf("save session secret: %w", err)
	}
	return &Session{ID: s.ID, UserID: s.UserID, CreatedAt: s.CreatedAt, ExpiresAt: s.ExpiresAt}, nil
}

func (g *GRPCGateway) CreateUser(ctx context.Context, id, name, email, password string) (*User, error) {
	req, err := rpc.Encode(rpc.CreateUserRequest{ID: id, Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	resp, err := g.client.CreateUser(ctx, req)
	if err != nil {
		return nil, g.mapError(err)
	}
	return decodeUser(resp)
}

func (g *GRPCGateway) UpdatePrefs(ctx context.Context, prefs Prefs) (*User, error) {
	req, err := rpc.Encode(rpc.UpdatePrefsRequest{Prefs: prefs})
	if err != nil {
		return nil, err
	}
	resp, err := g.client.UpdatePrefs(ctx, req)
	if err != nil {
		return nil, g.mapError(err)
	}
	return decodeUser(resp)
}

// DeleteSessions signs out everywhere and forgets the local secret.
func (g *GRPCGateway) DeleteSessions(ctx context.Context) error {
	if err := g.client.DeleteSessions(ctx); err != nil {
		return g.mapError(err)
	}
	return g.setSecret(ctx, "")
}

// ForgetSession clears the jar only. The server-side session is left to
// expire.
func (g *GRPCGateway) ForgetSession(ctx context.Context) error {
	return g.setSecret(ctx, "")
}

func decodeUser(resp *structpb.Struct) (*User, error) {
	var u User
	if err := rpc.Decode(resp, &u); err != nil {
		return nil, err
	}
	if u.Prefs == nil {
		u.Prefs = Prefs{}
	}
	return &u, nil
}

func isSessionGone(err error) bool {
	if rpc.TypeOf(err) == typeSessionNotFound {
		return true
	}
	return status.Code(err) == codes.NotFound
}

func (g *GRPCGateway) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if t := rpc.TypeOf(err); t != "" {
		return &Error{Code: int(st.Code()), Type: t, Message: st.Message()}
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
