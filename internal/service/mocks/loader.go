package mocks

import (
	"context"
	"errors"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/source"
)

// MockLoader is a mock implementation of the DatasetLoader interface.
type MockLoader struct {
	LoadFunc func(ctx context.Context, location string) (source.Dataset, error)
}

// Load implements the DatasetLoader interface
func (m *MockLoader) Load(ctx context.Context, location string) (source.Dataset, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, location)
	}
	return source.Dataset{}, errors.New("LoadFunc not implemented")
}
