package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, name string) (*Record, error) {
	query :=
		`SELECT name, document, revision, saved_at FROM snapshots
		 WHERE name = $1
		 `

	rec := &Record{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&rec.Name, &rec.Document, &rec.Revision, &rec.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) LockRevision(ctx context.Context, name string) (int64, error) {
	query :=
		`SELECT revision FROM snapshots
		 WHERE name = $1
		 FOR UPDATE
		 `

	var revision int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(&revision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return revision, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, name string, document []byte, revision int64) error {
	query :=
		`INSERT INTO snapshots (name, document, revision, saved_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (name) DO UPDATE
		 SET document = EXCLUDED.document, revision = EXCLUDED.revision, saved_at = EXCLUDED.saved_at
		 `

	if _, err := r.db.ExecContext(ctx, query, name, document, revision); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
