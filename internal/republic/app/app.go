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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/republichq/republic/internal/republic/http"
	"github.com/republichq/republic/internal/republic/mail"
	"github.com/republichq/republic/internal/republic/service"
	"github.com/republichq/republic/internal/republic/store"
	"github.com/republichq/republic/internal/republic/store/drivers/postgres"
	"github.com/republichq/republic/internal/republic/store/drivers/sqlite"
	"github.com/republichq/republic/pkg/cryptox"
	"github.com/republichq/republic/pkg/httpx"
	"github.com/republichq/republic/pkg/jwtx"
	"github.com/republichq/republic/pkg/metricsx"
	"github.com/republichq/republic/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	sessionIssuer = "republic"
)

// Application owns the store, services and HTTP server of one process.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	sessions *jwtx.HS256
	mailer   mail.Mailer
	metrics  *metricsx.Metrics

	accountService      *service.AccountService
	resetService        *service.ResetService
	clickService        *service.ClickService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New opens the database, brings the schema up to date and wires every
// dependency. Nothing is served until Run.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "republic",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initSessions(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initMailer(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run serves until SIGINT/SIGTERM or a server error.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("republic starting", "port", app.cfg.Port, "version", BuildVersion, "env", app.cfg.Env)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
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

// Shutdown drains in-flight requests, stops housekeeping and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down republic...")

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

	app.logger.Info("republic stopped")
	return nil
}

func (app *Application) initSessions() error {
	secret := app.cfg.SecretKey
	if secret == "" {
		// Validate allows an empty key only in dev.
		s, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = s
		app.logger.Warn("SECRET_KEY not set, using a random key; sessions end on restart")
	}

	sessions, err := jwtx.NewHS256(secret, sessionIssuer)
	if err != nil {
		return fmt.Errorf("failed to initialize sessions: %w", err)
	}
	app.sessions = sessions
	return nil
}

// initDatabase opens PostgreSQL when DATABASE_URL is set, SQLite otherwise,
// and applies migrations before any request can arrive.
func (app *Application) initDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.DBConnectTimeout)
	defer cancel()

	var (
		db  store.Store
		err error
	)
	if app.cfg.DatabaseURL != "" {
		db, err = postgres.Open(ctx, postgres.Config{
			URL:          app.cfg.DatabaseURL,
			MaxOpenConns: app.cfg.DBMaxOpenConns,
			MaxIdleConns: app.cfg.DBMaxIdleConns,
		})
	} else {
		db, err = sqlite.Open(ctx, sqlite.Config{Path: app.cfg.DatabaseFile})
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db
	if app.cfg.DatabaseURL != "" {
		app.logger.Info("using postgres backend")
	} else {
		app.logger.Info("using sqlite backend", "file", app.cfg.DatabaseFile)
	}

	// Migrations get their own budget; the connect timeout is for the dial.
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	defer cancelMigrate()
	if err := db.EnsureSchema(migrateCtx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database schema is up to date")
	return nil
}

func (app *Application) initMailer() error {
	if app.cfg.SendGridAPIKey == "" {
		if !app.cfg.IsDev() {
			app.logger.Warn("SENDGRID_API_KEY not set, password reset mails will only be logged")
		}
		app.mailer = mail.LogMailer{Logger: app.logger}
		return nil
	}

	sg, err := mail.NewSendGrid(app.cfg.SendGridAPIKey, app.cfg.MailDefaultSender, app.cfg.MailTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	app.mailer = sg
	return nil
}

func (app *Application) initServices() {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metricsx.New(reg)

	app.accountService = &service.AccountService{Store: app.db}
	app.resetService = &service.ResetService{
		Store:   app.db,
		Mailer:  app.mailer,
		BaseURL: app.cfg.PublicBaseURL,
		Metrics: app.metrics,
	}
	app.clickService = &service.ClickService{Store: app.db, Metrics: app.metrics}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.Metrics = app.metrics
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.sessions,
		httpx.CookieConfig{Secure: !app.cfg.IsDev(), TTL: app.cfg.SessionTTL},
		BuildVersion,
		app.db,
		app.metrics,
		app.cfg.RequestTimeout,
		app.logger,
	)

	router.AccountService = app.accountService
	router.ResetService = app.resetService
	router.ClickService = app.clickService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
