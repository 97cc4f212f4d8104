// Package server wires the storage, services and transports of the backend
// and runs the gRPC and HTTP servers until the context is cancelled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/stackquery/internal/logging"
	"github.com/dmitrijs2005/stackquery/internal/questions"
	"github.com/dmitrijs2005/stackquery/internal/server/config"
	"github.com/dmitrijs2005/stackquery/internal/server/httpapi"
	"github.com/dmitrijs2005/stackquery/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/stackquery/internal/server/services"
	"github.com/dmitrijs2005/stackquery/internal/votes"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/stackquery/internal/server/grpc"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	servers []runner
}

// openDB is replaced in tests.
var openDB = repomanager.Open

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return newApp(cfg, logger, db, rm), nil
}

func newApp(cfg *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	docs := rm.Documents(db)
	accounts := services.NewAccountService(db, rm, cfg)
	attachments := services.NewAttachmentService(cfg)
	resolver := votes.NewResolver(docs, votes.DefaultCollections(), logger)
	browser := questions.NewBrowser(docs, accounts, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		servers: []runner{
			gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, accounts, docs, attachments),
			httpapi.NewServer(cfg.EndpointAddrHTTP, logger, resolver, browser),
		},
	}
}

// Run blocks until ctx is cancelled or one of the servers fails, which
// stops the others.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")
	defer app.db.Close()

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range app.servers {
		g.Go(func() error { return s.Run(gctx) })
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
