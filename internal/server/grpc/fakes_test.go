package grpc

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/stackquery/internal/common"
	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/dmitrijs2005/stackquery/internal/server/auth"
	"github.com/dmitrijs2005/stackquery/internal/server/models"
	"github.com/dmitrijs2005/stackquery/internal/server/services"
)

// fakeAccounts keeps users and sessions in memory. Secrets are
// "secret-<email>", JWTs are "jwt-<sessionID>". The JWT "expired" is
// reported as expired.
type fakeAccounts struct {
	mu       sync.Mutex
	users    map[string]*models.User // by email
	sessions map[string]*models.Session
	jwtCalls int

	LastSecret string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{users: map[string]*models.User{}, sessions: map[string]*models.Session{}}
}

func (f *fakeAccounts) CreateUser(_ context.Context, id, name, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(password) < services.MinPasswordLen {
		return nil, services.ErrPasswordInvalid
	}
	if _, ok := f.users[email]; ok {
		return nil, services.ErrUserAlreadyExists
	}
	if id == "" || id == services.UniqueID {
		id = fmt.Sprintf("u%d", len(f.users)+1)
	}
	u := &models.User{ID: id, Name: name, Email: email, PasswordHash: []byte(password), Prefs: map[string]any{}, CreatedAt: time.Now()}
	f.users[email] = u
	return u, nil
}

func (f *fakeAccounts) CreateEmailPasswordSession(_ context.Context, email, password string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok || string(u.PasswordHash) != password {
		return nil, services.ErrInvalidCredentials
	}
	sess := &models.Session{ID: "s-" + u.ID, UserID: u.ID, Secret: "secret-" + email, CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	f.sessions[sess.Secret] = sess
	return sess, nil
}

func (f *fakeAccounts) GetSession(_ context.Context, secret string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastSecret = secret
	if s, ok := f.sessions[secret]; ok {
		return s, nil
	}
	return nil, services.ErrSessionNotFound
}

func (f *fakeAccounts) userFor(secret string) (*models.User, error) {
	s, ok := f.sessions[secret]
	if !ok {
		return nil, services.ErrSessionNotFound
	}
	for _, u := range f.users {
		if u.ID == s.UserID {
			return u, nil
		}
	}
	return nil, services.ErrSessionNotFound
}

func (f *fakeAccounts) GetUser(_ context.Context, secret string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userFor(secret)
}

func (f *fakeAccounts) UpdatePrefs(_ context.Context, secret string, prefs map[string]any) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, err := f.userFor(secret)
	if err != nil {
		return nil, err
	}
	u.Prefs = prefs
	return u, nil
}

func (f *fakeAccounts) DeleteSessions(_ context.Context, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[secret]
	if !ok {
		return services.ErrSessionNotFound
	}
	for k, v := range f.sessions {
		if v.UserID == s.UserID {
			delete(f.sessions, k)
		}
	}
	return nil
}

func (f *fakeAccounts) CreateJWT(_ context.Context, secret string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jwtCalls++
	s, ok := f.sessions[secret]
	if !ok {
		return "", services.ErrSessionNotFound
	}
	return "jwt-" + s.ID, nil
}

func (f *fakeAccounts) VerifyJWT(token string) (*auth.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == "expired" {
		return nil, common.ErrTokenExpired
	}
	for _, s := range f.sessions {
		if token == "jwt-"+s.ID {
			return &auth.Claims{UserID: s.UserID, SessionID: s.ID}, nil
		}
	}
	return nil, common.ErrInvalidToken
}

// memStore is an in-memory docstore.Store supporting the query subset the
// vote join uses.
type memStore struct {
	mu   sync.Mutex
	docs map[string][]*docstore.Document
	seq  int
}

func newMemStore() *memStore { return &memStore{docs: map[string][]*docstore.Document{}} }

func (m *memStore) Create(_ context.Context, collection, id string, fields map[string]any) (*docstore.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if id == "" {
		id = fmt.Sprintf("%s-%d", collection, m.seq)
	}
	for _, d := range m.docs[collection] {
		if d.ID == id {
			return nil, common.ErrAlreadyExists
		}
	}
	ts := time.Date(2024, 1, 1, 0, 0, m.seq, 0, time.UTC)
	d := &docstore.Document{ID: id, Collection: collection, CreatedAt: ts, UpdatedAt: ts, Fields: fields}
	m.docs[collection] = append(m.docs[collection], d)
	return d, nil
}

func (m *memStore) Get(_ context.Context, collection, id string, queries ...docstore.Query) (*docstore.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs[collection] {
		if d.ID == id {
			return d.Project(docstore.SelectedFields(queries)), nil
		}
	}
	return nil, docstore.ErrNotFound
}

func (m *memStore) List(_ context.Context, collection string, queries ...docstore.Query) (*docstore.DocumentList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*docstore.Document
	offset, limit := 0, 25
	desc := false
next:
	for _, d := range m.docs[collection] {
		for _, q := range queries {
			if q.Method == docstore.MethodEqual && d.String(q.Attribute) != docstore.FormatValue(q.Values[0]) {
				continue next
			}
		}
		matched = append(matched, d)
	}
	for _, q := range queries {
		switch q.Method {
		case docstore.MethodOffset:
			offset, _ = q.Int()
		case docstore.MethodLimit:
			limit, _ = q.Int()
		case docstore.MethodOrderDesc:
			desc = true
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	out := &docstore.DocumentList{Total: len(matched), Documents: []*docstore.Document{}}
	if offset < len(matched) {
		matched = matched[offset:]
		if len(matched) > limit {
			matched = matched[:limit]
		}
		out.Documents = matched
	}
	return out, nil
}

type fakePresigner struct {
	LastUser string
	url      string
	err      error
}

func (f *fakePresigner) PresignUpload(_ context.Context, userID string) (string, string, error) {
	f.LastUser = userID
	if f.err != nil {
		return "", "", f.err
	}
	return "attachments/" + userID + "/a1", f.url, nil
}

// staticTokens is a documents.TokenSource with a scripted refresh.
type staticTokens struct {
	mu        sync.Mutex
	token     string
	refreshed string
	refreshes int
}

func (s *staticTokens) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *staticTokens) RefreshToken(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
	s.token = s.refreshed
	return s.token, nil
}
