// Package gateway is the CLI's view of the remote session gateway:
// accounts, email/password sessions, user preferences and session-bound JWTs.
package gateway

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Reputation is the preference key initialized on first login.
const Reputation = "reputation"

type Session struct {
	ID        string    `json:"$id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"$createdAt"`
	ExpiresAt time.Time `json:"expire"`
}

// Prefs is the user's free-form preference bag.
type Prefs map[string]any

// Reputation returns the numeric reputation preference and whether it is
// present and non-zero.
func (p Prefs) Reputation() (float64, bool) {
	switch v := p[Reputation].(type) {
	case float64:
		return v, v != 0
	case int:
		return float64(v), v != 0
	case int64:
		return float64(v), v != 0
	default:
		return 0, false
	}
}

type User struct {
	ID    string `json:"$id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Prefs Prefs  `json:"prefs"`
}

// Error is a classified gateway failure such as bad credentials or a
// duplicate account.
type Error struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Type
	}
	return e.Message
}

// Gateway is the remote session gateway as consumed by the session store.
//
// GetSession reports "no current session" as (nil, nil). ForgetSession drops
// the locally held session secret without contacting the server.
type Gateway interface {
	GetSession(ctx context.Context) (*Session, error)
	GetUser(ctx context.Context) (*User, error)
	CreateJWT(ctx context.Context) (string, error)
	CreateEmailPasswordSession(ctx context.Context, email, password string) (*Session, error)
	CreateUser(ctx context.Context, id, name, email, password string) (*User, error)
	UpdatePrefs(ctx context.Context, prefs Prefs) (*User, error)
	DeleteSessions(ctx context.Context) error
	ForgetSession(ctx context.Context) error
}
