package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stackquery/internal/common"
	"github.com/dmitrijs2005/stackquery/internal/dbx"
	"github.com/dmitrijs2005/stackquery/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the user. A duplicate email yields common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	prefs, err := encodePrefs(user.Prefs)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO users (id, name, email, password_hash, prefs)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, prefs).Scan(&user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, prefs, created_at FROM users
		 WHERE email = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, prefs, created_at FROM users
		 WHERE id = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// UpdatePrefs replaces the whole preference bag.
func (r *PostgresRepository) UpdatePrefs(ctx context.Context, id string, prefs map[string]any) (*models.User, error) {
	raw, err := encodePrefs(prefs)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE users SET prefs = $2
		 WHERE id = $1
		 RETURNING id, name, email, password_hash, prefs, created_at
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, raw))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var prefs []byte

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &prefs, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Prefs = map[string]any{}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &user.Prefs); err != nil {
			return nil, fmt.Errorf("decode prefs: %w", err)
		}
	}
	return user, nil
}

func encodePrefs(prefs map[string]any) ([]byte, error) {
	if prefs == nil {
		prefs = map[string]any{}
	}
	b, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("encode prefs: %w", err)
	}
	return b, nil
}
