package session

import "github.com/dmitrijs2005/stackquery/internal/client/gateway"

// Status is the hydration state of the store.
type Status int

const (
	// StatusUnknown means startup verification has not finished yet.
	StatusUnknown Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Credentials are the session, its JWT and the user profile. They are only
// ever stored and cleared as one value.
type Credentials struct {
	Session gateway.Session
	Token   string
	User    gateway.User
}

// State is an immutable view of the store. Credentials may be set while
// Status is still StatusUnknown: that is a restored snapshot awaiting
// verification.
type State struct {
	Status      Status
	Credentials *Credentials
}

func (s State) Hydrated() bool {
	return s.Status != StatusUnknown
}

func (s State) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.Credentials != nil
}

func (s State) Token() string {
	if s.Credentials == nil {
		return ""
	}
	return s.Credentials.Token
}

func (s State) User() *gateway.User {
	if s.Credentials == nil {
		return nil
	}
	u := s.Credentials.User
	return &u
}

func settled(c *Credentials) Status {
	if c != nil {
		return StatusAuthenticated
	}
	return StatusAnonymous
}

type event interface {
	// persists reports whether the event can change the saved snapshot.
	persists() bool
}

type (
	restored struct{ creds *Credentials }
	verified struct{ creds *Credentials }
	loggedIn struct{ creds *Credentials }
	loggedOut struct{}
	hydrated  struct{}

	tokenRefreshed struct {
		sessionID string
		token     string
	}
)

func (restored) persists() bool       { return false }
func (verified) persists() bool       { return true }
func (loggedIn) persists() bool       { return true }
func (loggedOut) persists() bool      { return true }
func (hydrated) persists() bool       { return false }
func (tokenRefreshed) persists() bool { return true }

// reduce is the only place state transitions are defined. Status never
// returns to StatusUnknown once it has left it.
func reduce(s State, ev event) State {
	switch e := ev.(type) {
	case restored:
		if s.Status != StatusUnknown {
			return s
		}
		return State{Status: StatusUnknown, Credentials: e.creds}

	case verified:
		next := State{Status: s.Status, Credentials: e.creds}
		if next.Status != StatusUnknown {
			next.Status = settled(e.creds)
		}
		return next

	case loggedIn:
		return State{Status: StatusAuthenticated, Credentials: e.creds}

	case loggedOut:
		next := State{Status: s.Status}
		if next.Status != StatusUnknown {
			next.Status = StatusAnonymous
		}
		return next

	case hydrated:
		if s.Status != StatusUnknown {
			return s
		}
		return State{Status: settled(s.Credentials), Credentials: s.Credentials}

	case tokenRefreshed:
		if s.Credentials == nil || s.Credentials.Session.ID != e.sessionID {
			return s
		}
		c := *s.Credentials
		c.Token = e.token
		return State{Status: s.Status, Credentials: &c}
	}
	return s
}
