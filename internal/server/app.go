// Package server initializes and runs the back-office API server. It opens
// the database, applies migrations, wires services into the HTTP layer, and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/aquapure/backoffice/internal/dbx"
	"github.com/aquapure/backoffice/internal/logging"
	"github.com/aquapure/backoffice/internal/server/config"
	"github.com/aquapure/backoffice/internal/server/httpapi"
	"github.com/aquapure/backoffice/internal/server/migrations"
	"github.com/aquapure/backoffice/internal/server/models"
	"github.com/aquapure/backoffice/internal/server/repositories/admins"
	"github.com/aquapure/backoffice/internal/server/repositories/contacts"
	"github.com/aquapure/backoffice/internal/server/repositories/enquiries"
	"github.com/aquapure/backoffice/internal/server/repositories/gallery"
	"github.com/aquapure/backoffice/internal/server/repositories/issues"
	"github.com/aquapure/backoffice/internal/server/repositories/settings"
	"github.com/aquapure/backoffice/internal/server/repositories/visitors"
	"github.com/aquapure/backoffice/internal/server/services"
	"github.com/aquapure/backoffice/internal/server/tasks"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
	rollup *tasks.Rollup
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	if err := seedBootstrapAdmin(context.Background(), db, cfg); err != nil {
		return nil, fmt.Errorf("bootstrap admin error: %w", err)
	}

	adminSvc := services.NewAdminService(admins.NewPostgresRepository(db), cfg)
	gallerySvc := services.NewGalleryService(gallery.NewPostgresRepository(db), cfg)
	visitorSvc := services.NewVisitorService(visitors.NewPostgresRepository(db))

	api := httpapi.New(
		adminSvc,
		gallerySvc,
		visitorSvc,
		contacts.NewPostgresRepository(db),
		enquiries.NewPostgresRepository(db),
		issues.NewPostgresRepository(db),
		settings.NewPostgresRepository(db),
		logger,
	)

	rollup, err := tasks.NewRollup(cfg.RollupSchedule, visitorSvc, logger)
	if err != nil {
		return nil, fmt.Errorf("rollup schedule error: %w", err)
	}

	return &App{config: cfg, logger: logger, db: db, api: api, rollup: rollup}, nil
}

// seedBootstrapAdmin creates the first admin account on an empty database so
// a fresh deployment is immediately usable. The existence check and insert
// run in one transaction; concurrent replicas cannot double-seed.
func seedBootstrapAdmin(ctx context.Context, db *sql.DB, cfg *config.Config) error {
	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		return nil
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := admins.NewPostgresRepository(tx)

		existing, err := repo.List(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		_, err = repo.Create(ctx, &models.Admin{
			Name:         "Administrator",
			Email:        cfg.BootstrapEmail,
			Role:         "admin",
			PasswordHash: string(hash),
		})
		return err
	})
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.ListenAddr)

	app.initSignalHandler(cancelFunc)

	app.rollup.Start()

	srv := &http.Server{
		Addr:    app.config.ListenAddr,
		Handler: app.api.Router(),
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "http server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "http shutdown error", "error", err)
	}

	app.rollup.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	wg.Wait()
	app.logger.Info(ctx, "Stopped")
}
