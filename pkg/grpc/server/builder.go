package server

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const defaultPort = 50051

type Option func(*Options)

// Options collects the builder settings. Recovery is chained ahead of
// logging so a panicking handler is still logged with its Internal status.
type Options struct {
	port       int
	logger     *zap.Logger
	reflection bool
	logging    bool
	recovery   bool
}

// WithPort sets the listen port; 0 lets the kernel pick one.
func WithPort(port int) Option {
	return func(o *Options) { o.port = port }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithReflection exposes the reflection service for grpcurl and friends.
func WithReflection(enabled bool) Option {
	return func(o *Options) { o.reflection = enabled }
}

func WithLogging(enabled bool) Option {
	return func(o *Options) { o.logging = enabled }
}

// WithRecovery turns handler panics into Internal errors instead of crashing
// the process.
func WithRecovery(enabled bool) Option {
	return func(o *Options) { o.recovery = enabled }
}

func (o *Options) interceptors(logger *zap.Logger) []grpc.ServerOption {
	var chain []grpc.UnaryServerInterceptor
	if o.recovery {
		chain = append(chain, RecoveryInterceptor(logger))
	}
	if o.logging {
		chain = append(chain, LoggingInterceptor(logger))
	}
	if len(chain) == 0 {
		return nil
	}
	return []grpc.ServerOption{grpc.ChainUnaryInterceptor(chain...)}
}

// Server is a gRPC server with the standard health service attached. Every
// service registered through RegisterServiceWithHealth reports SERVING until
// Shutdown.
type Server struct {
	grpcServer   *grpc.Server
	lis          net.Listener
	logger       *zap.Logger
	healthServer *health.Server
	services     []string
}

// New listens on the configured port and builds the server.
func New(opts ...Option) (*Server, error) {
	options := &Options{port: defaultPort}
	for _, opt := range opts {
		opt(options)
	}

	if options.port < 0 || options.port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 0 and 65535", options.port)
	}

	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", options.port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", options.port, err)
	}

	grpcServer := grpc.NewServer(options.interceptors(logger)...)
	if options.reflection {
		reflection.Register(grpcServer)
	}

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return &Server{
		grpcServer:   grpcServer,
		lis:          lis,
		logger:       logger.Named("grpc-server"),
		healthServer: healthServer,
	}, nil
}

// RegisterServiceWithHealth registers a service and marks it SERVING under
// serviceName.
func (s *Server) RegisterServiceWithHealth(serviceName string, registerFunc func(s *grpc.Server)) {
	registerFunc(s.grpcServer)
	if serviceName == "" {
		return
	}
	s.services = append(s.services, serviceName)
	s.healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("registered service with health check", zap.String("service", serviceName))
}

// Start serves in the background and returns immediately.
func (s *Server) Start() {
	s.logger.Info("gRPC server starting",
		zap.String("addr", s.lis.Addr().String()),
		zap.Strings("services", s.services))

	go func() {
		if err := s.grpcServer.Serve(s.lis); err != nil {
			s.logger.Error("gRPC server failed", zap.Error(err))
		}
	}()
}

// Shutdown flips every health status to NOT_SERVING, then drains in-flight
// calls until ctx expires, after which open connections are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("gRPC server shutting down")
	s.healthServer.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("gRPC server stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("forced shutdown due to timeout")
		s.grpcServer.Stop()
		return ctx.Err()
	}
}

// Addr returns the listening address.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}
