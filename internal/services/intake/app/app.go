// Package app composes the intake bot runtime: storage, the Drive granter,
// the conversation flow, the admin surface, and the Telegram transport.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/drivegate/drivegate/internal/services/granter"
	"github.com/drivegate/drivegate/internal/services/intake"
	"github.com/drivegate/drivegate/internal/services/intake/render"
	"github.com/drivegate/drivegate/internal/services/intake/storage/sqlite"
	"github.com/drivegate/drivegate/internal/services/telegram"
)

const defaultShutdownTimeout = 5 * time.Second

// Config holds everything the bot runtime needs to start.
type Config struct {
	BotToken        string
	DBPath          string
	CredentialsPath string
	DelegatedUser   string
	Lang            string
	Teams           []string
	TeamFolders     map[string]string
	DefaultFolder   string
	AdminIDs        []int64
	FilePanelLimit  int
	HealthAddr      string
	ShutdownTimeout time.Duration
}

// Run wires the bot and serves until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open member store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close member store: %v", err)
		}
	}()

	renderer := render.New(cfg.Lang)

	drive, err := granter.NewDrive(ctx, cfg.CredentialsPath, cfg.DelegatedUser)
	if err != nil {
		return fmt.Errorf("init drive granter: %w", err)
	}
	folders := granter.NewFolders(cfg.TeamFolders, cfg.DefaultFolder)

	flow, err := intake.NewFlow(intake.FlowConfig{
		Store:          store,
		Granter:        drive,
		Folders:        folders,
		Renderer:       renderer,
		Teams:          cfg.Teams,
		FilePanelLimit: cfg.FilePanelLimit,
	})
	if err != nil {
		return fmt.Errorf("init intake flow: %w", err)
	}

	admin, err := intake.NewAdmin(store, renderer, cfg.Teams, cfg.AdminIDs)
	if err != nil {
		return fmt.Errorf("init admin surface: %w", err)
	}

	client, err := telegram.NewClient(cfg.BotToken, renderer)
	if err != nil {
		return fmt.Errorf("init telegram client: %w", err)
	}
	listener, err := telegram.NewListener(client, flow, admin)
	if err != nil {
		return fmt.Errorf("init telegram listener: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := listener.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("telegram listener: %w", err)
		}
		return nil
	})
	if cfg.HealthAddr != "" {
		group.Go(func() error {
			return serveHealth(groupCtx, cfg.HealthAddr, cfg.shutdownTimeout())
		})
	}
	return group.Wait()
}

func (cfg Config) shutdownTimeout() time.Duration {
	if cfg.ShutdownTimeout <= 0 {
		return defaultShutdownTimeout
	}
	return cfg.ShutdownTimeout
}

// healthHandler answers "ok" on the root path and /healthz so supervisor
// probes pointed at either keep working.
func healthHandler() http.Handler {
	ok := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/healthz" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Printf("write health response: %v", err)
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", ok)
	return mux
}

// serveHealth exposes a liveness endpoint for process supervisors.
func serveHealth(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           healthHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	log.Printf("health endpoint listening on %s", addr)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown health server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve health: %w", err)
	}
}
