// Package session owns the CLI's authentication state: the current gateway
// session, its JWT and the signed-in user's profile.
//
// State changes only through Store methods. Each method does its network
// I/O first, then commits one event through reduce, saves the snapshot and
// notifies subscribers. Readers see either the state before a commit or the
// state after it.
//
// Startup is Start: the saved snapshot is restored, then VerifySession asks
// the gateway whether the session is still alive. Until that finishes the
// status is StatusUnknown.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/stackquery/internal/client/gateway"
	"github.com/dmitrijs2005/stackquery/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	errNoUser           = errors.New("gateway returned no user")
)

// Result is returned by Login and CreateAccount. Err is set only when the
// gateway classified the failure.
type Result struct {
	Success bool
	Err     *gateway.Error
}

type Store struct {
	gw        gateway.Gateway
	persister Persister
	logger    logging.Logger
	newID     func() string

	mu        sync.RWMutex
	state     State
	listeners map[int]func(State)
	nextID    int

	persistMu sync.Mutex
}

type Option func(*Store)

// WithIDGenerator replaces uuid.NewString for account ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(gw gateway.Gateway, persister Persister, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		gw:        gw,
		persister: persister,
		logger:    logger.With("module", "session"),
		newID:     uuid.NewString,
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the current JWT or "".
func (s *Store) Token() string {
	return s.State().Token()
}

// Subscribe registers fn to run after every committed change. The returned
// func removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) commit(ctx context.Context, ev event) State {
	s.mu.Lock()
	prev := s.state
	next := reduce(prev, ev)
	s.state = next
	var listeners []func(State)
	if next != prev {
		listeners = make([]func(State), 0, len(s.listeners))
		for _, fn := range s.listeners {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	if next == prev {
		return next
	}
	if ev.persists() && next.Credentials != prev.Credentials {
		s.persist(ctx)
	}
	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// persist saves whatever is current when it gets the lock, so concurrent
// commits cannot leave an older snapshot on disk.
func (s *Store) persist(ctx context.Context) {
	if s.persister == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if err := s.persister.Save(ctx, snapshotOf(s.State())); err != nil {
		s.logger.Error(ctx, "failed to save auth snapshot", "error", err)
	}
}

// Rehydrate loads the saved snapshot. The status stays StatusUnknown.
func (s *Store) Rehydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	snap, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}
	s.commit(ctx, restored{creds: snap.credentials()})
	return nil
}

// Start is the startup sequence: Rehydrate, then VerifySession. A broken
// snapshot is logged and ignored.
func (s *Store) Start(ctx context.Context) State {
	if err := s.Rehydrate(ctx); err != nil {
		s.logger.Warn(ctx, "ignoring saved auth snapshot", "error", err)
	}
	return s.VerifySession(ctx)
}

// SetHydrated ends the StatusUnknown phase. It is a no-op afterwards.
func (s *Store) SetHydrated() {
	s.commit(context.Background(), hydrated{})
}

// VerifySession asks the gateway for the current session and, when there is
// one, refreshes the profile and the JWT. Any failure signs the store out.
// The store is always hydrated when it returns, and the returned State is
// the settled one. The deferred call covers a panicking gateway.
func (s *Store) VerifySession(ctx context.Context) State {
	defer s.SetHydrated()

	creds, err := s.current(ctx)
	if err != nil {
		s.logger.Debug(ctx, "session verification failed", "error", err)
		creds = nil
	}
	// commit even if ctx was cancelled mid-call
	s.commit(context.WithoutCancel(ctx), verified{creds: creds})
	s.SetHydrated()
	return s.State()
}

func (s *Store) current(ctx context.Context) (*Credentials, error) {
	sess, err := s.gw.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	return s.profileAndToken(ctx, *sess)
}

// profileAndToken fetches the profile and mints a JWT concurrently.
func (s *Store) profileAndToken(ctx context.Context, sess gateway.Session) (*Credentials, error) {
	var (
		user  *gateway.User
		token string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.gw.GetUser(gctx)
		user = u
		return err
	})
	g.Go(func() error {
		t, err := s.gw.CreateJWT(gctx)
		token = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errNoUser
	}
	return &Credentials{Session: sess, Token: token, User: *user}, nil
}

// Login creates a session for email and password. On failure the state is
// left as it was, and a session created before the failure is forgotten.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	sess, err := s.gw.CreateEmailPasswordSession(ctx, email, password)
	if err != nil {
		return s.failure(ctx, "login", err)
	}

	creds, err := s.profileAndToken(ctx, *sess)
	if err != nil {
		s.abandon(ctx)
		return s.failure(ctx, "login", err)
	}

	if _, ok := creds.User.Prefs.Reputation(); !ok {
		prefs := make(gateway.Prefs, len(creds.User.Prefs)+1)
		for k, v := range creds.User.Prefs {
			prefs[k] = v
		}
		prefs[gateway.Reputation] = 0

		u, err := s.gw.UpdatePrefs(ctx, prefs)
		if err != nil {
			s.abandon(ctx)
			return s.failure(ctx, "login", err)
		}
		creds.User = *u
	}

	s.commit(ctx, loggedIn{creds: creds})
	s.logger.Info(ctx, "logged in", "user_id", creds.User.ID)
	return Result{Success: true}
}

// abandon forgets the session of a login that failed after the session was
// created, so the next VerifySession does not sign the user in.
func (s *Store) abandon(ctx context.Context) {
	if err := s.gw.ForgetSession(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn(ctx, "could not forget abandoned session", "error", err)
	}
}

// CreateAccount registers a new user. It does not sign in.
func (s *Store) CreateAccount(ctx context.Context, name, email, password string) Result {
	if _, err := s.gw.CreateUser(ctx, s.newID(), name, email, password); err != nil {
		return s.failure(ctx, "create account", err)
	}
	return Result{Success: true}
}

// Logout deletes every session of the user at the gateway and then clears
// the local credentials. If the gateway call fails the local state is kept.
func (s *Store) Logout(ctx context.Context) {
	if err := s.gw.DeleteSessions(ctx); err != nil {
		s.logger.Error(ctx, "logout failed", "error", err)
		return
	}
	s.commit(ctx, loggedOut{})
}

// RefreshToken mints a new JWT for the current session.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	st := s.State()
	if !st.Authenticated() {
		return "", ErrNotAuthenticated
	}
	token, err := s.gw.CreateJWT(ctx)
	if err != nil {
		return "", err
	}
	s.commit(ctx, tokenRefreshed{sessionID: st.Credentials.Session.ID, token: token})
	return token, nil
}

func (s *Store) failure(ctx context.Context, op string, err error) Result {
	s.logger.Warn(ctx, op+" failed", "error", err)
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		return Result{Err: gwErr}
	}
	return Result{}
}
