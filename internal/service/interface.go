package service

import (
	"context"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/repository/models"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/source"
)

// DatasetLoader fetches the export found at a location.
type DatasetLoader interface {
	Load(ctx context.Context, location string) (source.Dataset, error)
}

// SnapshotRepository defines the interface for database operations for service.
type SnapshotRepository interface {
	Save(ctx context.Context, snap models.Snapshot) error
	// Latest returns nil when nothing has been stored yet.
	Latest(ctx context.Context) (*models.Snapshot, error)
	Prune(ctx context.Context, keep int) (int64, error)
}
