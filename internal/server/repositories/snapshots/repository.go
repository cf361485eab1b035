// Package snapshots stores serialized store snapshots in PostgreSQL.
package snapshots

import (
	"context"
	"time"
)

// Record is one stored snapshot row.
type Record struct {
	Name     string
	Document []byte
	Revision int64
	SavedAt  time.Time
}

type Repository interface {
	// Get returns the named snapshot or common.ErrorNotFound.
	Get(ctx context.Context, name string) (*Record, error)
	// LockRevision returns the current revision and row-locks it until the
	// surrounding transaction ends. A missing row yields 0.
	LockRevision(ctx context.Context, name string) (int64, error)
	// Upsert writes the document under name with the given revision.
	Upsert(ctx context.Context, name string, document []byte, revision int64) error
}
