// Package server wires the taskkeeper server together: logger, snapshot
// backend, record store, services and the HTTP transport.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/rest"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/dmitrijs2005/taskkeeper/internal/server/snapshot"
	"github.com/dmitrijs2005/taskkeeper/internal/server/store"
	"golang.org/x/sync/errgroup"
)

// Seams for tests.
var (
	newLogger      = logging.New
	newSnapshotter = snapshot.New
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	logCloser io.Closer
	store     *store.Store
	server    *rest.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, logCloser, err := newLogger(logging.Options{Level: c.LogLevel, File: c.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	snap, err := newSnapshotter(ctx, c)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("snapshot backend init error: %w", err)
	}

	st := store.Open(ctx, snap, logger, store.WithStrictUpdate(c.StrictUpdate))
	us := services.NewUserService(st.Users(), c.BcryptCost, logger)

	srv := rest.NewServer(c, logger, rest.Deps{
		Tasks:    st.Tasks(),
		Services: st.Services(),
		Users:    us,
		Stats:    st,
	})

	logger.Info(ctx, "app configured",
		"snapshot_backend", c.SnapshotBackend,
		"strict_update", c.StrictUpdate,
		"max_in_flight", c.MaxInFlight,
	)

	return &App{config: c, logger: logger, logCloser: logCloser, store: st, server: srv}, nil
}

// Run serves until ctx is cancelled, a termination signal arrives, the HTTP
// server fails or the store is poisoned. The store is flushed on the way
// out. A poisoned store makes Run return common.ErrorStorePoisoned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.server.Run(gctx)
	})

	g.Go(func() error {
		app.watchSignals(gctx, cancelFunc)
		return nil
	})

	g.Go(func() error {
		select {
		case <-app.store.Poisoned():
			app.logger.Error(gctx, "store poisoned, shutting down")
			return common.ErrorStorePoisoned
		case <-gctx.Done():
			return nil
		}
	})

	err := g.Wait()

	if cerr := app.store.Close(context.WithoutCancel(ctx)); cerr != nil {
		if !errors.Is(cerr, common.ErrorStorePoisoned) || err == nil {
			err = errors.Join(err, cerr)
		}
	} else {
		app.logger.Info(ctx, "final snapshot written")
	}

	app.logger.Info(ctx, "App stopped")
	_ = app.logCloser.Close()

	return err
}

func (app *App) watchSignals(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigs)

	select {
	case s := <-sigs:
		app.logger.Info(ctx, "signal received", "signal", s.String())
		cancelFunc()
	case <-ctx.Done():
	}
}
