package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	pb "github.com/alhekamatallam-lgtm/Alwefod/api/v1"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/service"
	"github.com/alhekamatallam-lgtm/Alwefod/pkg/cache"
)

const defaultGRPCTimeout = 90 * time.Second

type CacheKeyType string

const (
	CacheKeyDashboard CacheKeyType = "dashboard"
	CacheKeyProject   CacheKeyType = "project"
	cacheKeyRefresh   CacheKeyType = "refresh"
)

// ProjectKey is the cache key of one project's result.
func ProjectKey(kind aggregate.Kind) string {
	return fmt.Sprintf("%s:%s", CacheKeyProject, kind)
}

type GRPCHandlers struct {
	pb.UnimplementedDashboardServer
	dashboard DashboardService
	cache     *cache.ReadThrough
	logger    *zap.Logger
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(dashboard DashboardService, rt *cache.ReadThrough, logger *zap.Logger) *GRPCHandlers {
	if dashboard == nil {
		panic("nil DashboardService provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if rt == nil {
		rt = cache.NewReadThrough(nil, 0, logger)
	}
	return &GRPCHandlers{
		dashboard: dashboard,
		cache:     rt,
		logger:    logger.Named("grpc-handler"),
	}
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, aggregate.ErrUnknownKind):
		s.logger.Info("unknown project kind", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrProjectNotConfigured), errors.Is(err, service.ErrNoSnapshot):
		s.logger.Info("not found", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrUnknownProjectKind):
		s.logger.Error("invalid project configuration", zap.String("op", op), zap.Error(err))
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func (s *GRPCHandlers) GetDashboard(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	d, err := cache.Fetch(ctx, s.cache, string(CacheKeyDashboard), s.dashboard.GetDashboard)
	if err != nil {
		return nil, s.handleError(ctx, "GetDashboard", err)
	}
	return s.encode("GetDashboard", d)
}

func (s *GRPCHandlers) GetProject(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	kind := aggregate.Kind(strings.TrimSpace(req.GetValue()))
	if kind == "" {
		return nil, status.Error(codes.InvalidArgument, "project kind is required")
	}
	if !kind.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown project kind %q", kind)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	res, err := cache.Fetch(ctx, s.cache, ProjectKey(kind), func(fetchCtx context.Context) (service.ProjectResult, error) {
		return s.dashboard.GetProject(fetchCtx, kind)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetProject", err)
	}
	return s.encode("GetProject", res)
}

// RefreshDashboard rebuilds the dashboard; concurrent refreshes share one
// build and the result replaces the cached dashboard.
func (s *GRPCHandlers) RefreshDashboard(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	d, err := cache.Do(s.cache, string(cacheKeyRefresh), func() (service.Dashboard, error) {
		return s.dashboard.Refresh(ctx)
	})
	if err != nil {
		return nil, s.handleError(ctx, "RefreshDashboard", err)
	}
	if err := s.cache.Put(ctx, string(CacheKeyDashboard), d); err != nil {
		s.logger.Warn("failed to cache refreshed dashboard", zap.Error(err))
	}
	return s.encode("RefreshDashboard", d)
}

func (s *GRPCHandlers) encode(op string, v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		s.logger.Error("encode response", zap.String("op", op), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "%s failed: encode response", op)
	}
	return out, nil
}

// toStruct converts v through its JSON form, so gRPC and HTTP clients see
// the same field names.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
