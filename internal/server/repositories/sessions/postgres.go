package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stackquery/internal/common"
	"github.com/dmitrijs2005/stackquery/internal/dbx"
	"github.com/dmitrijs2005/stackquery/internal/server/models"
)

// PostgresRepository works over dbx.DBTX (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, secret_hash, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, s.ID, s.UserID, s.SecretHash, s.ExpiresAt).Scan(&s.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindBySecretHash(ctx context.Context, hash string) (*models.Session, error) {
	query := `
		SELECT id, user_id, secret_hash, created_at, expires_at
		FROM sessions
		WHERE secret_hash = $1
	`
	s := &models.Session{}
	if err := r.db.QueryRowContext(ctx, query, hash).Scan(&s.ID, &s.UserID, &s.SecretHash, &s.CreatedAt, &s.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
