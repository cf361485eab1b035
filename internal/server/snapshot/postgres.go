package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// DefaultSnapshotName is the row key used when none is configured.
const DefaultSnapshotName = "default"

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// PostgresSnapshotter keeps the document in one row of the snapshots table.
// Each Save bumps the row's revision inside a transaction.
type PostgresSnapshotter struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	name        string
}

// NewPostgresSnapshotter wraps an open database. Migrations are not run.
func NewPostgresSnapshotter(db *sql.DB, m repomanager.RepositoryManager, name string) *PostgresSnapshotter {
	if name == "" {
		name = DefaultSnapshotName
	}
	return &PostgresSnapshotter{db: db, repomanager: m, name: name}
}

// OpenPostgres connects with pgx, applies migrations and returns a
// snapshotter that owns the connection.
func OpenPostgres(ctx context.Context, dsn, name string) (*PostgresSnapshotter, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return NewPostgresSnapshotter(db, m, name), nil
}

func (p *PostgresSnapshotter) Save(ctx context.Context, d *Document) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := p.repomanager.Snapshots(tx)
		rev, err := repo.LockRevision(ctx, p.name)
		if err != nil {
			return fmt.Errorf("error reading snapshot revision: %w", err)
		}
		if err := repo.Upsert(ctx, p.name, data, rev+1); err != nil {
			return fmt.Errorf("error writing snapshot: %w", err)
		}
		return nil
	})
}

func (p *PostgresSnapshotter) Load(ctx context.Context) (*Document, error) {
	rec, err := p.repomanager.Snapshots(p.db).Get(ctx, p.name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("snapshot %q: %w", p.name, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}
	return Decode(rec.Document)
}

func (p *PostgresSnapshotter) Close() error {
	return p.db.Close()
}
