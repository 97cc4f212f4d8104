// Package users declares and implements persistence for gateway accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/stackquery/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePrefs(ctx context.Context, id string, prefs map[string]any) (*models.User, error)
}
