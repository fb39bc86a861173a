// SPDX-License-Identifier: MIT

package daemon

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/subburnd/subburnd/internal/config"
	"github.com/subburnd/subburnd/internal/staging"
)

// App owns the long-lived runtime: the server manager and the background
// scratch sweeper.
type App struct {
	logger  zerolog.Logger
	manager Manager
	store   *staging.Store
	cfg     config.AppConfig
}

// NewApp creates the daemon orchestrator.
func NewApp(logger zerolog.Logger, manager Manager, store *staging.Store, cfg config.AppConfig) *App {
	return &App{
		logger:  logger,
		manager: manager,
		store:   store,
		cfg:     cfg,
	}
}

// Run starts the sweeper and the servers and blocks until ctx is cancelled
// or a fatal server error occurs.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.store != nil && a.cfg.SweepInterval > 0 {
		g.Go(func() error {
			a.store.RunSweeper(ctx, a.cfg.SweepInterval, a.cfg.SweepMaxAge)
			return nil
		})
	}

	g.Go(func() error {
		return a.manager.Start(ctx)
	})

	return g.Wait()
}
