package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/service"
	"github.com/alhekamatallam-lgtm/Alwefod/pkg/cache"
)

// Cache keys are shared with the gRPC handlers so both transports serve the
// same cached values.
const (
	dashboardKey = "dashboard"
	refreshKey   = "refresh"
)

func projectKey(kind aggregate.Kind) string {
	return "project:" + string(kind)
}

// DashboardService is what the HTTP handlers need from the service layer.
type DashboardService interface {
	GetDashboard(ctx context.Context) (service.Dashboard, error)
	GetProject(ctx context.Context, kind aggregate.Kind) (service.ProjectResult, error)
	Refresh(ctx context.Context) (service.Dashboard, error)
}

// Router wires HTTP handlers.
type Router struct {
	dashboard DashboardService
	cache     *cache.ReadThrough
	logger    *zap.Logger
	origins   []string
}

// NewRouter builds the gin engine serving the dashboard. allowedOrigins is a
// comma separated list; "*" allows any origin.
func NewRouter(dashboard DashboardService, rt *cache.ReadThrough, logger *zap.Logger, allowedOrigins string) *gin.Engine {
	if dashboard == nil {
		panic("nil DashboardService provided to NewRouter")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if rt == nil {
		rt = cache.NewReadThrough(nil, 0, logger)
	}
	r := &Router{
		dashboard: dashboard,
		cache:     rt,
		logger:    logger.Named("http-handler"),
		origins:   splitOrigins(allowedOrigins),
	}

	router := gin.New()
	router.Use(r.requestLogger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/dashboard", r.getDashboard)
		api.POST("/dashboard/refresh", r.refreshDashboard)
		api.GET("/projects", r.listProjects)
		api.GET("/projects/:kind", r.getProject)
	}

	return router
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if t := strings.TrimSpace(o); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := ""
		for _, o := range r.origins {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		if allowed == "" && len(r.origins) == 0 {
			allowed = "*"
		}
		if allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			r.logger.Error("http request failed", fields...)
			return
		}
		r.logger.Info("http request completed", fields...)
	}
}

// writeError maps service errors onto HTTP statuses.
func (r *Router) writeError(c *gin.Context, op string, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		code = 499
	case errors.Is(err, aggregate.ErrUnknownKind):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrProjectNotConfigured), errors.Is(err, service.ErrNoSnapshot):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrUnknownProjectKind):
		code = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrStorageFailure):
		msg = "database error"
	}
	r.logger.Warn("request failed", zap.String("op", op), zap.Int("status", code), zap.Error(err))
	c.JSON(code, gin.H{"error": msg})
}

func (r *Router) getDashboard(c *gin.Context) {
	d, err := cache.Fetch(c.Request.Context(), r.cache, dashboardKey, r.dashboard.GetDashboard)
	if err != nil {
		r.writeError(c, "GetDashboard", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (r *Router) refreshDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	d, err := cache.Do(r.cache, refreshKey, func() (service.Dashboard, error) {
		return r.dashboard.Refresh(ctx)
	})
	if err != nil {
		r.writeError(c, "RefreshDashboard", err)
		return
	}
	if err := r.cache.Put(ctx, dashboardKey, d); err != nil {
		r.logger.Warn("failed to cache refreshed dashboard", zap.Error(err))
	}
	c.JSON(http.StatusOK, d)
}

func (r *Router) listProjects(c *gin.Context) {
	kinds := aggregate.Kinds()
	items := make([]gin.H, 0, len(kinds))
	for _, k := range kinds {
		items = append(items, gin.H{"kind": k, "name": k.DefaultName()})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (r *Router) getProject(c *gin.Context) {
	kind := aggregate.Kind(strings.TrimSpace(c.Param("kind")))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown project kind " + string(kind)})
		return
	}
	res, err := cache.Fetch(c.Request.Context(), r.cache, projectKey(kind), func(ctx context.Context) (service.ProjectResult, error) {
		return r.dashboard.GetProject(ctx, kind)
	})
	if err != nil {
		r.writeError(c, "GetProject", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
