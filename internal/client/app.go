// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/wanderlust-offline/internal/adapter"
	"github.com/MKhiriev/wanderlust-offline/internal/config"
	handler "github.com/MKhiriev/wanderlust-offline/internal/handler/http"
	"github.com/MKhiriev/wanderlust-offline/internal/interceptor"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/server"
	"github.com/MKhiriev/wanderlust-offline/internal/service"
	"github.com/MKhiriev/wanderlust-offline/internal/session"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
	"github.com/MKhiriev/wanderlust-offline/internal/tui"
	"github.com/MKhiriev/wanderlust-offline/internal/utils"
	"github.com/MKhiriev/wanderlust-offline/internal/workers"
	"github.com/MKhiriev/wanderlust-offline/models"
	"github.com/mattn/go-isatty"
)

// Dashboard is the interactive front of the client.
type Dashboard interface {
	Run(ctx context.Context) (logout bool, err error)
}

// App is the offline client process: local stores, sync services, the local
// HTTP listener and, when attached to a terminal, the dashboard.
type App struct {
	storages *store.ClientStorages
	services *service.Services
	workers  *workers.Workers
	ui       Dashboard

	headless bool
	logger   *logger.Logger
}

// NewApp builds every component from cfg. On failure the stores opened so
// far are closed.
func NewApp(ctx context.Context, cfg *config.ClientConfig, build models.BuildInfo, log *logger.Logger) (*App, error) {
	userID, err := resolveUserID(cfg.App)
	if err != nil {
		return nil, err
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storages: %w", err)
	}

	app, err := newApp(storages, cfg, userID, build, log)
	if err != nil {
		_ = storages.Close()
		return nil, err
	}

	return app, nil
}

func newApp(storages *store.ClientStorages, cfg *config.ClientConfig, userID string, build models.BuildInfo, log *logger.Logger) (*App, error) {
	api, err := adapter.NewHTTPTripAPI(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create trip api adapter: %w", err)
	}
	api = adapter.NewBreakerTripAPI(api, cfg.Adapter, log)

	services, err := service.NewServices(storages, api, cfg.Workers, log)
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}

	fetcher, err := adapter.NewHTTPPageFetcher(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create page fetcher: %w", err)
	}

	icpt, err := interceptor.New(storages.Responses, fetcher, cfg.Interceptor, log)
	if err != nil {
		return nil, fmt.Errorf("create interceptor: %w", err)
	}

	sessions := session.NewStore(cfg.Session.Capacity, cfg.Session.TTL)
	h := handler.NewHandler(services.Offline, icpt, sessions, cfg.Server, cfg.App, log)

	httpServer, err := server.NewHTTPServer(h.Init(), cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	return &App{
		storages: storages,
		services: services,
		workers:  workers.NewWorkers("offline-client", log, services.ProbeJob, services.SyncJob, httpServer),
		ui:       tui.New(services.Offline, userID, build, log),
		headless: cfg.App.Headless || !isatty.IsTerminal(os.Stdout.Fd()),
		logger:   log,
	}, nil
}

// Run starts the background workers and blocks until the dashboard is left
// or, in headless mode, until ctx is cancelled. Stores are closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := a.workers.RunBackground(ctx)

	if a.headless {
		a.logger.Info().Msg("running headless")
		return waitWorkers(done)
	}

	logout, err := a.ui.Run(ctx)
	cancel()
	werr := waitWorkers(done)

	switch {
	case errors.Is(err, tui.ErrUserQuit):
		return werr
	case err != nil:
		return err
	}
	if logout {
		a.logger.Info().Msg("local cache cleared, signing out")
	}
	return werr
}

func (a *App) close() {
	a.services.Wait()
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Msg("close storages")
	}
}

func waitWorkers(done <-chan error) error {
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// resolveUserID picks the configured user id, falling back to the "sub"
// claim of the API token.
func resolveUserID(cfg config.ClientApp) (string, error) {
	if cfg.UserID != "" {
		return cfg.UserID, nil
	}
	if cfg.APIToken == "" {
		return "", service.ErrNoUserID
	}

	sub, err := utils.SubjectFromJWT(cfg.APIToken)
	if err != nil {
		return "", fmt.Errorf("read user id from api token: %w", err)
	}
	return sub, nil
}
