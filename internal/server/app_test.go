package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/stackquery/internal/logging"
	"github.com/dmitrijs2005/stackquery/internal/server/config"
	"github.com/dmitrijs2005/stackquery/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrGRPC = "127.0.0.1:0"
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	return cfg
}

func TestNewApp_OpenError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(context.Context, string) (*sql.DB, error) {
		return nil, errors.New("connection refused")
	}

	app, err := NewApp(context.Background(), testConfig())
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "db init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	require.NoError(t, err)

	app := newApp(testConfig(), logging.Discard(), db, rm)
	require.Len(t, app.servers, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingRunner struct{ err error }

func (f failingRunner) Run(context.Context) error { return f.err }

type blockingRunner struct{ stopped chan struct{} }

func (b blockingRunner) Run(ctx context.Context) error {
	<-ctx.Done()
	close(b.stopped)
	return nil
}

func TestApp_RunFailureStopsOthers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	other := blockingRunner{stopped: make(chan struct{})}
	app := &App{
		config:  testConfig(),
		logger:  logging.Discard(),
		db:      db,
		servers: []runner{failingRunner{err: errors.New("address in use")}, other},
	}

	err = app.Run(context.Background())
	assert.EqualError(t, err, "address in use")
	<-other.stopped
}
