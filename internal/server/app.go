// Package server wires the viewer application: configuration, logging, the
// card store, the photo store and the HTTP server, plus graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tagme/internal/dbx"
	"github.com/dmitrijs2005/tagme/internal/logging"
	"github.com/dmitrijs2005/tagme/internal/objectstore"
	"github.com/dmitrijs2005/tagme/internal/photo"
	"github.com/dmitrijs2005/tagme/internal/repositories/repomanager"
	"github.com/dmitrijs2005/tagme/internal/server/config"
	"github.com/dmitrijs2005/tagme/internal/server/httpapi"
)

// Seams for tests.
var (
	openDB         = dbx.Open
	newObjectStore = func(ctx context.Context, o objectstore.Options) (photo.ObjectStore, error) {
		return objectstore.New(ctx, o)
	}
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, logging.Options{
		Format: "json",
		Level:  c.LogLevel,
		File:   c.LogFile,
	}).With("environment", c.Environment)

	return newApp(ctx, c, logger, repomanager.NewPostgresRepositoryManager())
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	store, err := newObjectStore(ctx, c.S3Options())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	resolver := photo.NewResolver(photo.NewHTTPFetcher(c.PhotoFetchTimeout), logger,
		photo.WithAllowedPrefixes(store.PublicURL("")),
	)
	h := httpapi.NewHandler(rm.Cards(db), resolver, c.CardDefaults(), logger,
		httpapi.WithUploader(photo.NewUploader(store)),
	)

	srv := httpapi.NewHTTPServer(c.HTTPAddr, httpapi.NewServerHandler(h, logger, c.CORSOrigins), logger)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// Run serves until SIGINT, SIGTERM or SIGQUIT, or until ctx is done.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")
	defer app.close(ctx)

	return app.server.Run(ctx)
}

func (app *App) close(ctx context.Context) {
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "close db failed", "error", err)
	}
}
