// Package cli implements the interactive admin console for the AquaPure
// back-office.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aquapure/backoffice/internal/client/api"
	"github.com/aquapure/backoffice/internal/client/config"
	"github.com/aquapure/backoffice/internal/client/credentials"
	"github.com/aquapure/backoffice/internal/client/session"
	"github.com/aquapure/backoffice/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the gateway, the credential store and the session store behind a
// small REPL.
type App struct {
	config    *config.Config
	logger    logging.Logger
	apiClient api.Client
	session   *session.Store
	db        *sql.DB
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, err := credentials.OpenDatabase(ctx, c.StatePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing state database: %w", err)
	}
	creds := credentials.NewSQLiteStore(db)

	gateway := api.NewHTTPClient(c.ServerURL, c.RequestTimeout, creds, logger)

	app := &App{
		config:    c,
		logger:    logger,
		apiClient: gateway,
		db:        db,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	app.session = session.New(gateway, creds, logger, session.WithNotifier(app.printNotice))

	// A 401 anywhere in the gateway lands the session back on the login
	// prompt through a proper state transition.
	gateway.OnUnauthorized(func(reason string) {
		app.session.ForceLogout(context.Background(), reason)
	})

	return app, nil
}

func (a *App) printNotice(msg string) {
	fmt.Fprintln(a.out, msg)
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	snap := a.session.Bootstrap(ctx)
	if snap.Status == session.StatusAuthenticated {
		fmt.Fprintf(a.out, "Signed in as %s (%s)\n", snap.User.Name, snap.User.Email)
	} else if snap.Status == session.StatusFailed {
		fmt.Fprintf(a.out, "Stored session rejected: %s\n", snap.Reason)
		a.session.ClearError()
	}

	a.Root(ctx)
}
