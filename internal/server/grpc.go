package server

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/fekuna/catalog-service/pkg/logger"
)

// ServiceName is the name reported to grpc.health.v1 clients besides the
// overall ("") status.
const ServiceName = "catalog.v1.Catalog"

// HealthServer serves grpc.health.v1 and reflection. Status follows the
// health checker, polled every interval.
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	check    func(ctx context.Context) error
	interval time.Duration
	logger   logger.ZapLogger
}

func NewHealthServer(check func(ctx context.Context) error, interval time.Duration, log logger.ZapLogger) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	s := &HealthServer{
		server:   grpc.NewServer(),
		health:   health.NewServer(),
		check:    check,
		interval: interval,
		logger:   log.With(zap.String("server", "grpc")),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	return s
}

// Refresh runs the check once and publishes the result.
func (s *HealthServer) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.check(ctx); err != nil {
		s.logger.Warn("grpc health: not serving", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// Serve blocks until ctx is cancelled or the listener fails.
func (s *HealthServer) Serve(ctx context.Context, port string) error {
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	lis, err := net.Listen("tcp", port)
	if err != nil {
		return errors.Wrapf(err, "listen %s", port)
	}

	s.Refresh(ctx)
	go s.poll(ctx)

	s.logger.Info("Starting gRPC health server", zap.String("port", port))
	return s.server.Serve(lis)
}

func (s *HealthServer) poll(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
