// Package probe serves /check_status, a reachability report for the
// alternate document store, and mirrors the result into the standard gRPC
// health service.
package probe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/frizzly/api/pkg/config"
	"github.com/frizzly/api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service reporting store reachability.
const ServiceName = "frizzly.StatusProbe"

type Service struct {
	config  *config.Config
	logger  *zap.Logger
	checker Checker

	router *gin.Engine
	server *http.Server

	health *health.Server
	grpc   *grpc.Server
}

func NewService(cfg *config.Config, logger *zap.Logger, checker Checker) *Service {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(metrics.Middleware())
	router.Use(gin.Recovery())

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_UNKNOWN)

	gs := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(gs, hs)

	return &Service{
		config:  cfg,
		logger:  logger,
		checker: checker,
		router:  router,
		server: &http.Server{
			Addr:              cfg.Probe.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		health: hs,
		grpc:   gs,
	}
}

func (s *Service) SetupRoutes() {
	s.router.GET("/check_status", s.checkStatus)
	s.router.GET("/metrics", metrics.Handler())
}

func (s *Service) Handler() http.Handler {
	return s.router
}

// Check runs the checker once, records the outcome and updates the gRPC
// health status.
func (s *Service) Check(ctx context.Context) error {
	start := time.Now()
	err := s.checker.Check(ctx)

	metrics.RecordProbe(err == nil)
	if err != nil {
		s.health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		s.logger.Warn("Store unreachable", zap.Duration("latency", time.Since(start)), zap.Error(err))
		return err
	}

	s.health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	s.logger.Debug("Store reachable", zap.Duration("latency", time.Since(start)))
	return nil
}

func (s *Service) checkStatus(c *gin.Context) {
	if err := s.Check(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "failed",
			"issue":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Watch re-checks the store every interval until ctx is done so gRPC
// health clients see a current status without polling /check_status.
func (s *Service) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_ = s.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Check(ctx)
		}
	}
}

func (s *Service) Start() error {
	s.logger.Info("Status probe starting", zap.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartGRPC serves the health service on lis until Shutdown.
func (s *Service) StartGRPC(lis net.Listener) error {
	s.logger.Info("Status probe gRPC health starting", zap.String("address", lis.Addr().String()))
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	s.health.Shutdown()
	s.grpc.GracefulStop()
	return s.server.Shutdown(ctx)
}
