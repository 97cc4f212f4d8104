package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/stackquery/internal/client/gateway"
)

// fakeGateway is safe for the concurrent profile/token calls.
type fakeGateway struct {
	mu sync.Mutex

	session    *gateway.Session
	sessionErr error

	user    *gateway.User
	userErr error

	tokens   []string
	tokenErr error

	loginSession *gateway.Session
	loginErr     error

	createErr error
	prefsErr  error
	deleteErr error
	forgetErr error

	LastEmail      string
	LastPassword   string
	LastCreateID   string
	LastCreateName string
	LastPrefs      gateway.Prefs

	GetSessionCalls  int
	GetUserCalls     int
	CreateJWTCalls   int
	UpdatePrefsCalls int
	DeleteCalls      int
	ForgetCalls      int
}

func (f *fakeGateway) GetSession(ctx context.Context) (*gateway.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetSessionCalls++
	return f.session, f.sessionErr
}

func (f *fakeGateway) GetUser(ctx context.Context) (*gateway.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetUserCalls++
	if f.userErr != nil {
		return nil, f.userErr
	}
	u := *f.user
	u.Prefs = gateway.Prefs{}
	for k, v := range f.user.Prefs {
		u.Prefs[k] = v
	}
	return &u, nil
}

func (f *fakeGateway) CreateJWT(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateJWTCalls++
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	if len(f.tokens) == 0 {
		return "jwt", nil
	}
	t := f.tokens[0]
	if len(f.tokens) > 1 {
		f.tokens = f.tokens[1:]
	}
	return t, nil
}

func (f *fakeGateway) CreateEmailPasswordSession(ctx context.Context, email, password string) (*gateway.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastEmail, f.LastPassword = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginSession, nil
}

func (f *fakeGateway) CreateUser(ctx context.Context, id, name, email, password string) (*gateway.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCreateID, f.LastCreateName, f.LastEmail, f.LastPassword = id, name, email, password
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &gateway.User{ID: id, Name: name, Email: email, Prefs: gateway.Prefs{}}, nil
}

func (f *fakeGateway) UpdatePrefs(ctx context.Context, prefs gateway.Prefs) (*gateway.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdatePrefsCalls++
	f.LastPrefs = prefs
	if f.prefsErr != nil {
		return nil, f.prefsErr
	}
	u := *f.user
	u.Prefs = prefs
	return &u, nil
}

func (f *fakeGateway) DeleteSessions(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	return f.deleteErr
}

func (f *fakeGateway) ForgetSession(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ForgetCalls++
	return f.forgetErr
}

type memPersister struct {
	mu      sync.Mutex
	snap    *Snapshot
	loadErr error
	saveErr error
	Saves   []Snapshot
}

func (p *memPersister) Load(ctx context.Context) (*Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap, p.loadErr
}

func (p *memPersister) Save(ctx context.Context, s Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Saves = append(p.Saves, s)
	if p.saveErr != nil {
		return p.saveErr
	}
	p.snap = &s
	return nil
}

func (p *memPersister) last() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Saves[len(p.Saves)-1]
}
