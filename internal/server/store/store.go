package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/snapshot"
)

const (
	collectionTasks    = "tasks"
	collectionServices = "services"
	collectionUsers    = "users"
)

// Store is the record store. Construct it once with Open and share the
// pointer; Close flushes it at shutdown.
type Store struct {
	mu       sync.RWMutex
	tasks    *Table[models.Task]
	services *Table[models.Service]
	users    *UserTable

	snapshotter  snapshot.Snapshotter
	logger       logging.Logger
	strictUpdate bool
	mutated      bool

	poisoned   atomic.Bool
	poisonOnce sync.Once
	poisonCh   chan struct{}

	taskView    *Collection[models.Task]
	serviceView *Collection[models.Service]
	userView    *UserCollection
}

type Option func(*Store)

// WithStrictUpdate makes Update refuse ids that do not exist yet.
func WithStrictUpdate(strict bool) Option {
	return func(s *Store) { s.strictUpdate = strict }
}

// Stats counts live records per table.
type Stats struct {
	Tasks    int `json:"tasks"`
	Services int `json:"services"`
	Users    int `json:"users"`
}

// Open builds a store and fills it from snap. A missing or unreadable
// snapshot is logged and the store starts empty; Open never fails.
func Open(ctx context.Context, snap snapshot.Snapshotter, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		tasks:       NewTable[models.Task](),
		services:    NewTable[models.Service](),
		users:       NewUserTable(),
		snapshotter: snap,
		logger:      logger.With("module", "store"),
		poisonCh:    make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}

	s.taskView = &Collection[models.Task]{store: s, table: s.tasks, name: collectionTasks}
	s.serviceView = &Collection[models.Service]{store: s, table: s.services, name: collectionServices}
	s.userView = &UserCollection{store: s}

	doc, err := snap.Load(ctx)
	switch {
	case err == nil:
		s.restore(doc)
		s.logger.Info(ctx, "snapshot loaded",
			"tasks", s.tasks.Len(), "services", s.services.Len(), "users", s.users.Len())
	case errors.Is(err, common.ErrorNotFound):
		s.logger.Info(ctx, "no snapshot found, starting empty")
	default:
		s.logger.Warn(ctx, "snapshot unreadable, starting empty", "error", err.Error())
	}
	s.updateGauges()

	return s
}

func (s *Store) Tasks() *Collection[models.Task]       { return s.taskView }
func (s *Store) Services() *Collection[models.Service] { return s.serviceView }
func (s *Store) Users() *UserCollection                { return s.userView }

// Poisoned is closed once the store has been poisoned.
func (s *Store) Poisoned() <-chan struct{} {
	return s.poisonCh
}

func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.read(func() {
		st = Stats{Tasks: s.tasks.Len(), Services: s.services.Len(), Users: s.users.Len()}
	})
	return st, err
}

// Close writes a final snapshot and releases the snapshotter. Nothing is
// written when no mutation happened since Open, so an unreadable snapshot is
// left on disk as found. A poisoned store is not flushed: its state is unknown.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned.Load() {
		return common.ErrorStorePoisoned
	}

	var errs []error
	if s.mutated {
		if err := s.snapshotter.Save(context.WithoutCancel(ctx), s.document()); err != nil {
			errs = append(errs, fmt.Errorf("final snapshot: %w", err))
		}
	}
	if c, ok := s.snapshotter.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close snapshotter: %w", err))
		}
	}
	return errors.Join(errs...)
}

// write runs fn under the exclusive lock. When fn reports a change the
// snapshot is saved before the lock is released.
func (s *Store) write(ctx context.Context, collection, op string, fn func() bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned.Load() {
		return common.ErrorStorePoisoned
	}
	defer s.recoverPoison(ctx)

	if !fn() {
		return nil
	}

	s.mutated = true
	mutationCounter.WithLabelValues(collection, op).Inc()
	s.updateGauges()
	s.persist(ctx)
	return nil
}

func (s *Store) read(fn func()) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.poisoned.Load() {
		return common.ErrorStorePoisoned
	}
	defer s.recoverPoison(context.Background())

	fn()
	return nil
}

// recoverPoison must be deferred directly inside a critical section.
func (s *Store) recoverPoison(ctx context.Context) {
	if r := recover(); r != nil {
		s.poisoned.Store(true)
		poisonedGauge.Set(1)
		s.poisonOnce.Do(func() { close(s.poisonCh) })
		s.logger.Error(ctx, "panic inside store critical section, store poisoned", "panic", fmt.Sprint(r))
		panic(r)
	}
}

// persist saves the current state. Failures are logged and counted; the
// in-memory mutation stands.
func (s *Store) persist(ctx context.Context) {
	start := time.Now()
	err := s.snapshotter.Save(context.WithoutCancel(ctx), s.document())
	snapshotSaveDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		snapshotSaveCounter.WithLabelValues("error").Inc()
		s.logger.Warn(ctx, "snapshot save failed", "error", err.Error())
		return
	}
	snapshotSaveCounter.WithLabelValues("ok").Inc()
}

func (s *Store) document() *snapshot.Document {
	return &snapshot.Document{
		Tasks:    s.tasks.export(),
		Services: s.services.export(),
		Users:    s.users.export(),
	}
}

func (s *Store) restore(d *snapshot.Document) {
	s.tasks.replace(d.Tasks)
	s.services.replace(d.Services)
	s.users.replace(d.Users)
}

func (s *Store) updateGauges() {
	recordsGauge.WithLabelValues(collectionTasks).Set(float64(s.tasks.Len()))
	recordsGauge.WithLabelValues(collectionServices).Set(float64(s.services.Len()))
	recordsGauge.WithLabelValues(collectionUsers).Set(float64(s.users.Len()))
}
