package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/stackquery/internal/client/config"
	"github.com/dmitrijs2005/stackquery/internal/client/documents"
	"github.com/dmitrijs2005/stackquery/internal/client/gateway"
	"github.com/dmitrijs2005/stackquery/internal/client/localdb"
	"github.com/dmitrijs2005/stackquery/internal/client/session"
	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/dmitrijs2005/stackquery/internal/filex"
	"github.com/dmitrijs2005/stackquery/internal/logging"
	"github.com/dmitrijs2005/stackquery/internal/questions"
	"github.com/dmitrijs2005/stackquery/internal/votes"
)

// authStore is the part of *session.Store the commands use.
type authStore interface {
	State() session.State
	Start(ctx context.Context) session.State
	Login(ctx context.Context, email, password string) session.Result
	CreateAccount(ctx context.Context, name, email, password string) session.Result
	Logout(ctx context.Context)
}

type questionPoster interface {
	Ask(ctx context.Context, authorID string, d questions.Draft) (*docstore.Document, error)
}

type questionBrowser interface {
	Browse(ctx context.Context, page int) (*questions.Listing, error)
}

type voteLister interface {
	List(ctx context.Context, req votes.Request) (*votes.Page, error)
}

type attachmentUploader interface {
	UploadAttachment(ctx context.Context, body io.Reader, size int64, contentType string) (string, error)
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	auth      authStore
	questions questionPoster
	browser   questionBrowser
	votes     voteLister
	uploader  attachmentUploader
	reader    *bufio.Reader
	closers   []io.Closer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := localdb.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	gw, err := gateway.NewGRPCGateway(c.ServerEndpointAddr, gateway.NewMetadataJar(db.Metadata))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore(gw, session.NewMetadataPersister(db.Metadata), logger)

	docs, err := documents.NewGRPCStore(c.ServerEndpointAddr, store)
	if err != nil {
		_ = gw.Close()
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:    c,
		logger:    logger.With("module", "cli"),
		auth:      store,
		questions: questions.NewService(docs),
		browser:   questions.NewBrowser(docs, nil, logger),
		votes:     votes.NewResolver(docs, votes.DefaultCollections(), logger),
		uploader:  docs,
		reader:    bufio.NewReader(os.Stdin),
		closers:   []io.Closer{docs, gw, db},
	}, nil
}

// Run verifies the saved session and starts the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	startCtx, cancel := a.withTimeout(ctx)
	st := a.auth.Start(startCtx)
	cancel()

	printlnFn("Welcome to StackQuery CLI (type 'help' for commands)")
	if st.Authenticated() {
		printlnFn("Signed in as", st.User().Name)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().Authenticated()
}

func (a *App) getStatus() string {
	st := a.auth.State()
	if u := st.User(); st.Authenticated() && u != nil {
		return fmt.Sprintf("(%s)", u.Name)
	}
	return fmt.Sprintf("(%s)", st.Status)
}
