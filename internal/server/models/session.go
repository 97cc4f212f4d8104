package models

import "time"

// Session is a login session. Secret is the opaque value the client
// presents; only its hash is stored.
type Session struct {
	ID         string
	UserID     string
	Secret     string
	SecretHash string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
