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

	httpapi "github.com/slimyai/gatehouse/internal/auth/http"
	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/internal/auth/store"
	"github.com/slimyai/gatehouse/internal/auth/store/drivers/sqlite"
	"github.com/slimyai/gatehouse/pkg/cryptox"
	"github.com/slimyai/gatehouse/pkg/jwtx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	adminSigner *jwtx.Signer

	inviteService       *service.InviteService
	sessionService      *service.SessionService
	loginService        *service.LoginService
	resetService        *service.ResetService
	totpService         *service.TOTPService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gatehouse",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initAdminSigner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	// Seed the owner allowlist before serving so a fresh deployment has an
	// owner without any invite existing yet.
	if len(cfg.OwnerEmails) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.bootstrapService.SeedAllowlist(ctx, cfg.OwnerEmails); err != nil {
			_ = app.db.Close()
			return nil, fmt.Errorf("failed to seed owner allowlist: %w", err)
		}
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("gatehouse starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

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
	app.logger.Info("shutting down gatehouse...")

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

	app.logger.Info("gatehouse stopped")
	return nil
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

// initAdminSigner sets up the HS256 signer for admin bearer tokens. Without
// a configured secret an ephemeral one is generated: admin endpoints stay
// wired but only tokens minted by this process instance verify.
func (app *Application) initAdminSigner() error {
	secret := app.cfg.AdminSecret
	if secret == "" {
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate admin secret: %w", err)
		}
		secret = generated
		app.logger.Warn("ADMIN_JWT_SECRET not set; using an ephemeral secret")
	}

	app.adminSigner = &jwtx.Signer{
		Secret: []byte(secret),
		Issuer: app.cfg.Issuer,
		TTL:    jwtx.DefaultAdminTokenTTL,
	}
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.inviteService = &service.InviteService{Store: app.db}
	app.sessionService = &service.SessionService{
		Store: app.db,
		TTL:   app.cfg.SessionTTL,
	}
	app.totpService = &service.TOTPService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}
	app.loginService = &service.LoginService{
		Store:    app.db,
		Sessions: app.sessionService,
		TOTP:     app.totpService,
	}
	app.resetService = &service.ResetService{
		Store:    app.db,
		Sessions: app.sessionService,
		TTL:      app.cfg.ResetTokenTTL,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:  app.db,
		Logger: app.logger,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.adminSigner,
		BuildVersion,
		app.cfg.Env != "dev", // secure cookies everywhere but local dev
		app.db,
		app.logger,
	)

	router.InviteService = app.inviteService
	router.SessionService = app.sessionService
	router.LoginService = app.loginService
	router.ResetService = app.resetService
	router.TOTPService = app.totpService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
