package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/profiles/internal/profiles/http"
	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/internal/profiles/store/drivers/sqlite"
	"github.com/aussiebroadwan/profiles/pkg/cryptox"
	"github.com/aussiebroadwan/profiles/pkg/jwtx"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the account service to its HTTP surface.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.Signer

	accountService *service.AccountService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the service logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "profiles",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates an Application with every dependency initialized. Migrations
// are applied before it returns.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	db, err := OpenStore(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	signer, err := LoadSigner(cfg, app.logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.signer = signer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// OpenStore opens the SQLite database at cfg.DatabaseFile and applies any
// pending migrations.
func OpenStore(cfg Config, logger *slog.Logger) (*sqlite.Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		cfg.DatabaseFile,
	)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied", "path", cfg.DatabaseFile)
	return db, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives or
// the server fails.
func (app *Application) Run() error {
	ctx := context.Background()
	if empty, err := app.accountService.IsEmpty(ctx); err == nil && empty {
		app.logger.Warn("no accounts exist yet; create one with the createsuperuser command")
	}

	app.logger.Info("profiles service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down profiles service")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("profiles service stopped")
	return nil
}

// Handler exposes the routed HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) initServices() {
	app.accountService = &service.AccountService{Store: app.db}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.cfg.Issuer,
		app.cfg.TokenTTL,
		BuildVersion,
		app.db,
		app.logger,
	)
	router.AccountService = app.accountService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
