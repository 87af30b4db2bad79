// Package cli implements the interactive RentEase terminal client: a REPL
// over the application services, with per-field validation while forms are
// filled in, the way the web forms validate on blur.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/XXS1337/rentease/internal/client/api"
	"github.com/XXS1337/rentease/internal/client/config"
	"github.com/XXS1337/rentease/internal/client/services"
	"github.com/XXS1337/rentease/internal/client/session"
	"github.com/XXS1337/rentease/internal/client/store"
	"github.com/XXS1337/rentease/internal/logging"
	"github.com/XXS1337/rentease/internal/validate"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	out       io.Writer
	reader    *bufio.Reader
	db        *sql.DB
	client    api.Client
	session   *session.Manager
	validator *validate.Validator
	probe     *validate.AvailabilityProbe

	auth      services.AuthService
	flats     services.FlatService
	messages  services.MessageService
	users     services.UserService
	assistant services.AssistantService
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := store.Open(ctx, filepath.Join(cfg.StateDir, "state.db"))
	if err != nil {
		return nil, err
	}

	sess := session.NewManager(session.NewStore(db), log)
	client := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, sess, sess.ForceExpire, log)
	validator := validate.New(client)

	a := &App{
		config:    cfg,
		log:       log,
		out:       os.Stdout,
		reader:    bufio.NewReader(os.Stdin),
		db:        db,
		client:    client,
		session:   sess,
		validator: validator,
		probe:     validate.NewAvailabilityProbe(client, cfg.EmailCheckRPS),
		auth:      services.NewAuthService(client, sess, validator, log),
		flats:     services.NewFlatService(client, sess, validator, log),
		messages:  services.NewMessageService(client, validator, log),
		users:     services.NewUserService(client, sess, validator, log),
		assistant: services.NewAssistantService(client, log),
	}
	sess.SetExpiredHandler(a.notifySessionExpired)
	return a, nil
}

// notifySessionExpired runs once per forced expiry, however many requests
// fail together. The REPL re-reads session state every prompt, so printing
// the notice is all the "redirect to login" a terminal needs.
func (a *App) notifySessionExpired() {
	fmt.Fprintln(a.out, "Session expired. Please log in again.")
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.auth.Rehydrate(ctx)
	if u := a.session.User(); u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.FullName())
	}

	a.Root(ctx)
}

func (a *App) Close() {
	_ = a.client.Close()
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) isAdmin() bool {
	u := a.session.User()
	return u != nil && u.IsAdmin()
}
