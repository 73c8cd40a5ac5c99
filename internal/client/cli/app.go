package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/biteboxd/internal/client/client"
	"github.com/dmitrijs2005/biteboxd/internal/client/config"
	"github.com/dmitrijs2005/biteboxd/internal/client/drafts"
	"github.com/dmitrijs2005/biteboxd/internal/client/gate"
	"github.com/dmitrijs2005/biteboxd/internal/client/repositories"
	"github.com/dmitrijs2005/biteboxd/internal/client/routepath"
	"github.com/dmitrijs2005/biteboxd/internal/client/services"
	"github.com/dmitrijs2005/biteboxd/internal/client/session"
	"github.com/dmitrijs2005/biteboxd/internal/filex"
	"github.com/dmitrijs2005/biteboxd/internal/logging"
)

// SessionView is the read side of the session the CLI needs.
type SessionView interface {
	Current() session.Snapshot
	LastEmail(ctx context.Context) string
}

type App struct {
	log logging.Logger
	db  *sql.DB

	session SessionView
	auth    services.AuthService
	recipes services.RecipeService
	gate    *gate.Gate

	reader   *bufio.Reader
	out      io.Writer
	location string

	// photo URLs from the backend are relative to this
	baseURL string
}

// NewApp opens the local database, restores the saved session and wires the
// backend client. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dbPath, err := filex.EnsureParentDir(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	db, err := repositories.OpenDatabase(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(cfg.ServerBaseURL, client.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore(api, session.NewMetadataSlot(db), log)
	api.SetTokenSource(store.Token)
	if err := store.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		log:      log,
		db:       db,
		session:  store,
		auth:     services.NewAuthService(store, log),
		recipes:  services.NewRecipeService(api, log),
		gate:     gate.New(store),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		location: routepath.Root,
		baseURL:  cfg.ServerBaseURL,
	}
	return a, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to BiteBoxd CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Restored your previous session.")
	}
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return gate.IsRouteAdmitted(a.session.Current())
}

func (a *App) status() string {
	who := "guest"
	if a.isLoggedIn() {
		who = "signed in"
	}
	return fmt.Sprintf("[%s] %s", who, a.location)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail prints the user-facing form of err and returns it.
func (a *App) fail(ctx context.Context, err error) error {
	var ve *drafts.ValidationError
	var te *services.TransportError
	switch {
	case errors.As(err, &ve):
		a.println(ve.Reason)
	case errors.As(err, &te):
		a.println(te.Message)
	default:
		a.println("Error:", err)
	}
	a.log.Debug(ctx, "command failed", "location", a.location, "error", err)
	return err
}
