package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/stackquery/internal/dbx"
	"github.com/dmitrijs2005/stackquery/internal/server/repositories/documents"
	"github.com/dmitrijs2005/stackquery/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/stackquery/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Documents(db dbx.DBTX) *documents.PostgresRepository
}
