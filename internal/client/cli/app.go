// Package cli is the interactive shell over the client core: auth,
// live status watching, monitoring control, calibration, model and
// settings management.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"github.com/spineguard/spinectl/internal/client/api"
	"github.com/spineguard/spinectl/internal/client/config"
	"github.com/spineguard/spinectl/internal/client/credentials"
	"github.com/spineguard/spinectl/internal/client/monitor"
	"github.com/spineguard/spinectl/internal/client/session"
	"github.com/spineguard/spinectl/internal/logging"
	"github.com/spineguard/spinectl/internal/obs"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	client  api.Client
	session *session.Manager
	mirror  *monitor.Mirror
	poller  *monitor.Poller
	coord   *monitor.Coordinator
	reader  *bufio.Reader

	stopWatch context.CancelFunc
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, cfg.Verbose)

	db, err := credentials.Open(ctx, cfg.CredentialsDBPath)
	if err != nil {
		log.Error(ctx, "error initializing credential database", "err", err)
		return nil, err
	}
	store := credentials.NewStore(db)

	client := api.NewHTTPClient(cfg.ServerBaseURL, store)
	sess := session.NewManager(client, store, log)
	mirror := monitor.NewMirror()
	poller := monitor.NewPoller(client, mirror, cfg.PollInterval, log)
	coord := monitor.NewCoordinator(client, mirror, log)

	a := &App{
		config:  cfg,
		log:     log,
		client:  client,
		session: sess,
		mirror:  mirror,
		poller:  poller,
		coord:   coord,
		reader:  bufio.NewReader(os.Stdin),
	}

	// Logout invalidates everything session-scoped: the running watch
	// loop and all mirrored state.
	sess.SetLogoutHook(func(ctx context.Context) {
		a.cancelWatch()
		mirror.Reset()
	})

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "err", err)
	}
	if a.session.TokenExpired() {
		fmt.Println("Stored session has expired; please log in again.")
	}

	if a.config.MetricsAddr != "" {
		obs.Init()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", obs.Handler())
			if err := http.ListenAndServe(a.config.MetricsAddr, mux); err != nil {
				a.log.Error(ctx, "metrics listener stopped", "err", err)
			}
		}()
	}

	a.Root(ctx)
}

func (a *App) cancelWatch() {
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Identity()
	return ok
}

// requireUser returns the current user id, or "" after printing a hint.
func (a *App) requireUser() string {
	id, ok := a.session.Identity()
	if !ok {
		fmt.Println("Please login first.")
		return ""
	}
	return id.ID
}
