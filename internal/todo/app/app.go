package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/stackleaf/todo/internal/todo/http"
	"github.com/stackleaf/todo/internal/todo/service"
	"github.com/stackleaf/todo/internal/todo/store"
	"github.com/stackleaf/todo/internal/todo/store/drivers/sqlite"
	"github.com/stackleaf/todo/pkg/cryptox"
	"github.com/stackleaf/todo/pkg/jwtx"
	"github.com/stackleaf/todo/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the todo service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	tokenService        *service.TokenService
	authService         *service.AuthService
	todoService         *service.TodoService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "todo-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	// Generated secrets keep dev setups working but invalidate every
	// session on restart, so warn loudly.
	if app.cfg.AccessSecret == "" {
		app.cfg.AccessSecret = cryptox.MustGenerateToken(cryptox.TokenSize256)
		app.logger.Warn("TODO_ACCESS_SECRET not set, generated an ephemeral one")
	}
	if app.cfg.RefreshSecret == "" {
		app.cfg.RefreshSecret = cryptox.MustGenerateToken(cryptox.TokenSize256)
		app.logger.Warn("TODO_REFRESH_SECRET not set, generated an ephemeral one")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("todo service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down todo service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("todo service stopped")
	return nil
}

// Router exposes the HTTP handler, mainly for tests that mount the full
// application on an in-process server.
func (app *Application) Router() http.Handler {
	return app.router
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Access:     jwtx.NewHS256([]byte(app.cfg.AccessSecret), app.cfg.Issuer),
		Refresh:    jwtx.NewHS256([]byte(app.cfg.RefreshSecret), app.cfg.Issuer),
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}

	app.authService = &service.AuthService{
		Store:  app.db,
		Tokens: app.tokenService,
	}

	app.todoService = &service.TodoService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.AuthService = app.authService
	router.TokenService = app.tokenService
	router.TodoService = app.todoService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
