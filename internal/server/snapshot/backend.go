package snapshot

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// New builds the snapshotter selected by cfg.SnapshotBackend.
func New(ctx context.Context, cfg *config.Config) (Snapshotter, error) {
	switch cfg.SnapshotBackend {
	case "", BackendFile:
		return NewFileSnapshotter(cfg.SnapshotPath), nil
	case BackendPostgres:
		return OpenPostgres(ctx, cfg.DatabaseDSN, cfg.SnapshotName)
	case BackendS3:
		return NewS3Snapshotter(ctx, S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Key:          cfg.S3ObjectKey,
		})
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}
