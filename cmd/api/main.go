// Command api runs the Dream Trade CRM HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/auth"
	"github.com/Iamalive23802/Dream-Trade/internal/email"
	"github.com/Iamalive23802/Dream-Trade/internal/events"
	apphttp "github.com/Iamalive23802/Dream-Trade/internal/http"
	"github.com/Iamalive23802/Dream-Trade/internal/http/router"
	"github.com/Iamalive23802/Dream-Trade/internal/leads"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/importer"
	"github.com/Iamalive23802/Dream-Trade/internal/notification"
	"github.com/Iamalive23802/Dream-Trade/internal/storage"
	"github.com/Iamalive23802/Dream-Trade/internal/teams"
	"github.com/Iamalive23802/Dream-Trade/internal/users"
	usersvc "github.com/Iamalive23802/Dream-Trade/internal/users/service"
	"github.com/Iamalive23802/Dream-Trade/platform/config"
	"github.com/Iamalive23802/Dream-Trade/platform/db"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	migrationsDir   = "migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger needs config; fall back to stderr for this one failure.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	if err := withRetry(startCtx, log, "migrations", func() error {
		return db.RunMigrations(startCtx, cfg, migrationsDir)
	}); err != nil {
		return err
	}

	var pool *pgxpool.Pool
	if err := withRetry(startCtx, log, "database", func() error {
		var err error
		pool, err = db.NewPool(startCtx, cfg)
		return err
	}); err != nil {
		return err
	}
	defer pool.Close()

	bus := events.NewBus()
	notification.Register(bus, log)

	archive, err := storage.NewImportArchive(startCtx, cfg, log)
	if err != nil {
		// Object storage is optional infrastructure; run without it.
		log.Warn("import archive unavailable", "error", err.Error())
	}

	mailer := email.NewSender(cfg, log)

	usersModule := users.NewModule(pool, credentialMailer(mailer), log)

	var archiver importer.Archiver
	if archive != nil {
		archiver = archive
	}
	leadsModule := leads.NewModule(pool, usersModule.Directory(), usersModule.Directory(), archiver, bus, log)
	authModule := auth.NewModule(pool, cfg, log)
	teamsModule := teams.NewModule(pool)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: bus,
		Modules: []apphttp.Module{
			authModule,
			leadsModule,
			usersModule,
			teamsModule,
		},
	}

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.GetHTTPAddr(), "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}

// credentialMailer avoids handing a typed nil to the users service when
// email is disabled.
func credentialMailer(s *email.Sender) usersvc.CredentialMailer {
	if s == nil {
		return nil
	}
	return s
}

// withRetry runs fn with exponential backoff until it succeeds or the
// context expires. Databases in fresh deployments are often a few seconds
// behind the application container.
func withRetry(ctx context.Context, log *logger.Logger, name string, fn func() error) error {
	backoff := time.Second
	for {
		err := fn()
		if err == nil {
			return nil
		}

		log.Warn("startup step failed, retrying", "step", name, "backoff", backoff.String(), "error", err.Error())
		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
		}
		if backoff < 8*time.Second {
			backoff *= 2
		}
	}
}
