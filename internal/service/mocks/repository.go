package mocks

import (
	"context"
	"errors"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/repository/models"
)

// MockSnapshotRepository is a mock implementation of the SnapshotRepository
// interface for testing the service layer.
type MockSnapshotRepository struct {
	SaveFunc   func(ctx context.Context, snap models.Snapshot) error
	LatestFunc func(ctx context.Context) (*models.Snapshot, error)
	PruneFunc  func(ctx context.Context, keep int) (int64, error)
}

// Save implements the SnapshotRepository interface
func (m *MockSnapshotRepository) Save(ctx context.Context, snap models.Snapshot) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, snap)
	}
	return errors.New("SaveFunc not implemented")
}

// Latest implements the SnapshotRepository interface
func (m *MockSnapshotRepository) Latest(ctx context.Context) (*models.Snapshot, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx)
	}
	return nil, errors.New("LatestFunc not implemented")
}

// Prune implements the SnapshotRepository interface
func (m *MockSnapshotRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if m.PruneFunc != nil {
		return m.PruneFunc(ctx, keep)
	}
	return 0, nil
}
