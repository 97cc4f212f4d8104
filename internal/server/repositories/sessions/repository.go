// Package sessions declares the server-side repository for login sessions.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/stackquery/internal/server/models"
)

type Repository interface {
	// Create stores a new session row.
	Create(ctx context.Context, s *models.Session) error

	// FindBySecretHash returns common.ErrNotFound when no session matches.
	FindBySecretHash(ctx context.Context, hash string) (*models.Session, error)

	// DeleteByUserID removes every session of the user and reports how many
	// were removed.
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}
