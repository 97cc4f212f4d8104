package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/stackquery/internal/client/gateway"
	"github.com/dmitrijs2005/stackquery/internal/client/session"
	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/dmitrijs2005/stackquery/internal/logging"
	"github.com/dmitrijs2005/stackquery/internal/questions"
	"github.com/dmitrijs2005/stackquery/internal/votes"
)

type fakeAuth struct {
	state session.State

	LastEmail    string
	LastName     string
	LastPassword string

	loginRes    session.Result
	createRes   session.Result
	logoutClear bool

	startCalls  int
	logoutCalls int
}

func (f *fakeAuth) State() session.State { return f.state }

func (f *fakeAuth) Start(context.Context) session.State {
	f.startCalls++
	if f.state.Status == session.StatusUnknown {
		f.state.Status = session.StatusAnonymous
	}
	return f.state
}

func (f *fakeAuth) Login(_ context.Context, email, password string) session.Result {
	f.LastEmail, f.LastPassword = email, password
	if f.loginRes.Success {
		f.state = signedIn("u1", "Ada")
	}
	return f.loginRes
}

func (f *fakeAuth) CreateAccount(_ context.Context, name, email, password string) session.Result {
	f.LastName, f.LastEmail, f.LastPassword = name, email, password
	return f.createRes
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalls++
	if f.logoutClear {
		f.state = session.State{Status: session.StatusAnonymous}
	}
}

func signedIn(id, name string) session.State {
	return session.State{
		Status: session.StatusAuthenticated,
		Credentials: &session.Credentials{
			Session: gateway.Session{ID: "s1", UserID: id},
			Token:   "jwt",
			User: gateway.User{ID: id, Name: name, Email: "ada@example.com",
				Prefs: gateway.Prefs{gateway.Reputation: float64(12)}},
		},
	}
}

type fakePoster struct {
	LastAuthor string
	LastDraft  questions.Draft
	err        error
}

func (f *fakePoster) Ask(_ context.Context, authorID string, d questions.Draft) (*docstore.Document, error) {
	f.LastAuthor, f.LastDraft = authorID, d
	if f.err != nil {
		return nil, f.err
	}
	return &docstore.Document{ID: "q-new", Collection: docstore.Questions}, nil
}

type fakeVotes struct {
	LastRequest votes.Request
	page        *votes.Page
	err         error
}

func (f *fakeVotes) List(_ context.Context, req votes.Request) (*votes.Page, error) {
	f.LastRequest = req
	return f.page, f.err
}

type fakeBrowser struct {
	LastPage int
	listing  *questions.Listing
	err      error
}

func (f *fakeBrowser) Browse(_ context.Context, page int) (*questions.Listing, error) {
	f.LastPage = page
	return f.listing, f.err
}

type fakeUploader struct {
	LastBody        string
	LastSize        int64
	LastContentType string
	id              string
	err             error
}

func (f *fakeUploader) UploadAttachment(_ context.Context, body io.Reader, size int64, contentType string) (string, error) {
	b, _ := io.ReadAll(body)
	f.LastBody, f.LastSize, f.LastContentType = string(b), size, contentType
	return f.id, f.err
}

func newTestApp(auth *fakeAuth) *App {
	return &App{
		logger:    logging.Discard(),
		auth:      auth,
		questions: &fakePoster{},
		browser:   &fakeBrowser{listing: &questions.Listing{}},
		votes:     &fakeVotes{page: &votes.Page{}},
		uploader:  &fakeUploader{},
		reader:    bufio.NewReader(strings.NewReader("")),
	}
}

// capturePrintln collects printlnFn output for the duration of the test.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = toString(v)
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}

// stubInputs feeds getSimpleText answers in order and a fixed password.
func stubInputs(t *testing.T, answers []string, password string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	queue := append([]string(nil), answers...)
	next := func() string {
		if len(queue) == 0 {
			return ""
		}
		s := queue[0]
		queue = queue[1:]
		return s
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
}
