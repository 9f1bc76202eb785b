package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func TestLoggingInterceptor(t *testing.T) {
	interceptor := LoggingInterceptor(zaptest.NewLogger(t))
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/TestMethod"}

	t.Run("successful request", func(t *testing.T) {
		resp, err := interceptor(context.Background(), "test request", info, func(ctx context.Context, req any) (any, error) {
			return "success", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "success", resp)
	})

	t.Run("error request", func(t *testing.T) {
		_, err := interceptor(context.Background(), "test request", info, func(ctx context.Context, req any) (any, error) {
			return nil, status.Error(codes.InvalidArgument, "test error")
		})

		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(zap.NewNop())
	info := &grpc.UnaryServerInfo{FullMethod: "/alwefod.v1.Dashboard/GetDashboard"}

	t.Run("panic becomes internal", func(t *testing.T) {
		resp, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
			panic("index out of range")
		})

		assert.Nil(t, resp)
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.Contains(t, err.Error(), "GetDashboard")
	})

	t.Run("normal calls pass through", func(t *testing.T) {
		resp, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, resp)
	})
}

func TestNewServer(t *testing.T) {
	t.Run("invalid port", func(t *testing.T) {
		_, err := New(WithPort(70000))
		assert.ErrorContains(t, err, "invalid port")
	})

	t.Run("health check", func(t *testing.T) {
		server, err := New(
			WithPort(0),
			WithLogger(zaptest.NewLogger(t)),
			WithLogging(true),
			WithRecovery(true),
		)
		require.NoError(t, err)

		assert.NotNil(t, server.grpcServer)
		assert.NotNil(t, server.logger)
		assert.NotNil(t, server.healthServer)

		server.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			assert.NoError(t, server.Shutdown(ctx))
		}()

		conn, err := grpc.NewClient(server.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
		require.NoError(t, err)
		defer conn.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
	})

	t.Run("service health", func(t *testing.T) {
		server, err := New(WithPort(0))
		require.NoError(t, err)

		server.RegisterServiceWithHealth("alwefod.v1.Dashboard", func(s *grpc.Server) {})
		server.RegisterServiceWithHealth("", func(s *grpc.Server) {})
		assert.Equal(t, []string{"alwefod.v1.Dashboard"}, server.services)

		check := func() healthpb.HealthCheckResponse_ServingStatus {
			resp, err := server.healthServer.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "alwefod.v1.Dashboard"})
			require.NoError(t, err)
			return resp.Status
		}
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check())

		require.NoError(t, server.Shutdown(context.Background()))
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check())
	})
}
