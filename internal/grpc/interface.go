package grpc

import (
	"context"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/service"
)

// DashboardService is what the handlers need from the service layer.
type DashboardService interface {
	GetDashboard(ctx context.Context) (service.Dashboard, error)
	GetProject(ctx context.Context, kind aggregate.Kind) (service.ProjectResult, error)
	Refresh(ctx context.Context) (service.Dashboard, error)
}
