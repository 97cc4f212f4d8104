// Package services contains server-side business logic: the account and
// session gateway and attachment presigning.
package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/stackquery/internal/common"
	"github.com/dmitrijs2005/stackquery/internal/dbx"
	"github.com/dmitrijs2005/stackquery/internal/server/auth"
	"github.com/dmitrijs2005/stackquery/internal/server/config"
	"github.com/dmitrijs2005/stackquery/internal/server/models"
	"github.com/dmitrijs2005/stackquery/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 8
	// UniqueID asks the server to generate the user id.
	UniqueID     = "unique()"
	secretLength = 32
)

// AccountService manages users, their login sessions and the JWTs minted
// from a session.
type AccountService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	jwtValidity     time.Duration
	sessionValidity time.Duration
	now             func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.SecretKey),
		jwtValidity:     cfg.JWTValidityDuration,
		sessionValidity: cfg.SessionValidityDuration,
		now:             time.Now,
	}
}

// CreateUser registers an account. It does not sign the user in.
func (s *AccountService) CreateUser(ctx context.Context, id, name, email, password string) (*models.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrEmailInvalid
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return nil, ErrPasswordInvalid
	}
	if id == "" || id == UniqueID {
		id = uuid.NewString()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Prefs:        map[string]any{},
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// CreateEmailPasswordSession checks the credentials and opens a session.
// The returned session carries the plaintext secret; only its hash is
// stored.
func (s *AccountService) CreateEmailPasswordSession(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	secret, err := common.MakeRandHexString(secretLength)
	if err != nil {
		return nil, common.ErrInternal
	}

	sess := &models.Session{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Secret:     secret,
		SecretHash: hashSecret(secret),
		ExpiresAt:  s.now().Add(s.sessionValidity),
	}
	if err := s.repomanager.Sessions(s.db).Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}
	return sess, nil
}

// GetSession resolves a session secret. Unknown, empty and expired secrets
// all yield ErrSessionNotFound.
func (s *AccountService) GetSession(ctx context.Context, secret string) (*models.Session, error) {
	if secret == "" {
		return nil, ErrSessionNotFound
	}
	sess, err := s.repomanager.Sessions(s.db).FindBySecretHash(ctx, hashSecret(secret))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *AccountService) GetUser(ctx context.Context, secret string) (*models.User, error) {
	sess, err := s.GetSession(ctx, secret)
	if err != nil {
		return nil, err
	}
	u, err := s.repomanager.Users(s.db).GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return u, nil
}

// AuthorName returns the public display name of a user.
func (s *AccountService) AuthorName(ctx context.Context, userID string) (string, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user %s: %w", userID, err)
	}
	return u.Name, nil
}

// UpdatePrefs replaces the preference bag of the session's user.
func (s *AccountService) UpdatePrefs(ctx context.Context, secret string, prefs map[string]any) (*models.User, error) {
	sess, err := s.GetSession(ctx, secret)
	if err != nil {
		return nil, err
	}
	u, err := s.repomanager.Users(s.db).UpdatePrefs(ctx, sess.UserID, prefs)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return u, nil
}

// DeleteSessions signs the user out everywhere.
func (s *AccountService) DeleteSessions(ctx context.Context, secret string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)
		sess, err := repo.FindBySecretHash(ctx, hashSecret(secret))
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if _, err := repo.DeleteByUserID(ctx, sess.UserID); err != nil {
			return fmt.Errorf("error deleting sessions: %w", err)
		}
		return nil
	})
}

// CreateJWT mints a short-lived token bound to the session.
func (s *AccountService) CreateJWT(ctx context.Context, secret string) (string, error) {
	sess, err := s.GetSession(ctx, secret)
	if err != nil {
		return "", err
	}
	token, err := auth.GenerateToken(sess.UserID, sess.ID, s.jwtSecret, s.jwtValidity)
	if err != nil {
		return "", common.ErrInternal
	}
	return token, nil
}

// VerifyJWT returns the token claims, or common.ErrTokenExpired /
// common.ErrInvalidToken.
func (s *AccountService) VerifyJWT(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
