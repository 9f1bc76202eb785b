package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	pb "github.com/alhekamatallam-lgtm/Alwefod/api/v1"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/config"
	handler "github.com/alhekamatallam-lgtm/Alwefod/internal/grpc"
	httpapi "github.com/alhekamatallam-lgtm/Alwefod/internal/http"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/repository"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/service"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/source"
	"github.com/alhekamatallam-lgtm/Alwefod/pkg/cache"
	dbbuilder "github.com/alhekamatallam-lgtm/Alwefod/pkg/database"
	grpcsrv "github.com/alhekamatallam-lgtm/Alwefod/pkg/grpc/server"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      cache.Store
	grpcServer *grpcsrv.Server
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	catalogue, err := config.LoadCatalogue(cfg.ProjectsFile)
	if err != nil {
		return nil, fmt.Errorf("project catalogue: %w", err)
	}
	logger.Info("Project catalogue loaded",
		zap.String("file", cfg.ProjectsFile),
		zap.Int("projects", len(catalogue.Projects)))

	if err := ensureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithMigrations(repository.Schema),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	var store cache.Store = cache.Noop{}
	if cfg.CacheEnabled {
		cacheClient, err := cache.New(ctx, cache.WithAddress(cfg.RedisAddr))
		if err != nil {
			_ = dbPool.Close()
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		store = cacheClient
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Info("Cache disabled")
	}
	readThrough := cache.NewReadThrough(store, cfg.CacheTTL, logger)

	loader := source.NewRouter(
		source.NewHTTPSource(cfg.FetchTimeout, logger),
		source.NewFileSource(),
	)
	snapshots := repository.NewSnapshotRepository(dbPool)
	dashboardService := service.NewDashboardService(loader, snapshots, cfg.Settings(catalogue), logger.Named("dashboard"))

	grpcHandlers := handler.NewGRPCHandlers(dashboardService, readThrough, logger)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithLogging(true),
		grpcsrv.WithRecovery(true),
	)
	if err != nil {
		_ = store.Close()
		_ = dbPool.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(pb.Dashboard_ServiceName, func(s *grpc.Server) {
		pb.RegisterDashboardServer(s, grpcHandlers)
	})

	router := httpapi.NewRouter(dashboardService, readThrough, logger, cfg.AllowedOrigins)
	httpServer, err := httpapi.NewServer(cfg.HTTPPort, router, logger)
	if err != nil {
		_ = grpcServer.Shutdown(ctx)
		_ = store.Close()
		_ = dbPool.Close()
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      store,
		grpcServer: grpcServer,
		httpServer: httpServer,
	}, nil
}

// ensureDir creates the parent directory of a file-backed sqlite database.
func ensureDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Run starts the servers and blocks until ctx is done, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	a.grpcServer.Start()
	a.httpServer.Start()

	<-ctx.Done()

	a.logger.Info("application shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", zap.Error(err))
	}
	if err := a.grpcServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("grpc shutdown error", zap.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	if shutdownCtx.Err() == context.DeadlineExceeded {
		a.logger.Warn("shutdown completed but deadline exceeded")
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return nil
}
