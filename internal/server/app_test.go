package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingSnapshotter struct{}

func (panickingSnapshotter) Save(context.Context, *snapshot.Document) error {
	panic("snapshot exploded")
}

func (panickingSnapshotter) Load(context.Context) (*snapshot.Document, error) {
	return nil, common.ErrorNotFound
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.SnapshotPath = filepath.Join(t.TempDir(), "database.json")
	cfg.ShutdownTimeout = time.Second
	cfg.LogLevel = "error"
	return cfg
}

func TestApp_RunFlushesOnShutdown(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	app, err := NewApp(ctx, cfg)
	require.NoError(t, err)

	require.NoError(t, app.store.Tasks().Insert(ctx, models.Task{ID: 1, Name: "persist me"}))
	require.NoError(t, os.Remove(cfg.SnapshotPath))

	runCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(runCtx) }()

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}

	data, err := os.ReadFile(cfg.SnapshotPath)
	require.NoError(t, err)
	doc, err := snapshot.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "persist me", doc.Tasks[1].Name)
}

func TestApp_PoisonedStoreStopsRun(t *testing.T) {
	orig := newSnapshotter
	t.Cleanup(func() { newSnapshotter = orig })
	newSnapshotter = func(context.Context, *config.Config) (snapshot.Snapshotter, error) {
		return panickingSnapshotter{}, nil
	}

	ctx := context.Background()
	app, err := NewApp(ctx, testConfig(t))
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()

	assert.Panics(t, func() {
		_ = app.store.Tasks().Insert(ctx, models.Task{ID: 1})
	})

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, common.ErrorStorePoisoned)
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running on a poisoned store")
	}
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("bad log level", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.LogLevel = "loud"

		_, err := NewApp(context.Background(), cfg)
		assert.ErrorContains(t, err, "logger init error")
	})

	t.Run("unknown snapshot backend", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.SnapshotBackend = "floppy"

		_, err := NewApp(context.Background(), cfg)
		assert.ErrorContains(t, err, "snapshot backend init error")
	})
}
