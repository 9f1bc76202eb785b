package mocks

import (
	"context"
	"errors"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/service"
)

// MockDashboardService is a mock implementation of the DashboardService
// interface for testing the handler layer. It uses function-based mocking
// for flexibility.
type MockDashboardService struct {
	GetDashboardFunc func(ctx context.Context) (service.Dashboard, error)
	GetProjectFunc   func(ctx context.Context, kind aggregate.Kind) (service.ProjectResult, error)
	RefreshFunc      func(ctx context.Context) (service.Dashboard, error)
}

// GetDashboard implements the DashboardService interface
func (m *MockDashboardService) GetDashboard(ctx context.Context) (service.Dashboard, error) {
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(ctx)
	}
	return service.Dashboard{}, errors.New("GetDashboardFunc not implemented")
}

// GetProject implements the DashboardService interface
func (m *MockDashboardService) GetProject(ctx context.Context, kind aggregate.Kind) (service.ProjectResult, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, kind)
	}
	return service.ProjectResult{}, errors.New("GetProjectFunc not implemented")
}

// Refresh implements the DashboardService interface
func (m *MockDashboardService) Refresh(ctx context.Context) (service.Dashboard, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return service.Dashboard{}, errors.New("RefreshFunc not implemented")
}
