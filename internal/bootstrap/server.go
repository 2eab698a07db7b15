package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/seatbooking/config"
	"github.com/Domenick1991/seatbooking/internal/logger"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 5 * time.Second

// ReadinessCheck reports whether the storage backend is reachable.
type ReadinessCheck func(ctx context.Context) error

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	health     *health.Server
}

func NewServers(cfg *config.Config, handler http.Handler) *Servers {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		health: healthSrv,
	}
}

// Run starts the HTTP API and, when configured, the gRPC health server. It
// blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, ready ReadinessCheck) error {
	s := NewServers(cfg, handler)

	var lis net.Listener
	if cfg.GRPC.Address != "" {
		var err error
		lis, err = net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if lis != nil {
		g.Go(func() error {
			logger.Info("grpc health server started", "address", cfg.GRPC.Address)
			return s.grpcServer.Serve(lis)
		})
	}

	g.Go(func() error {
		logger.Info("http server started", "address", cfg.HTTP.Address)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.markServing(gctx, ready)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("servers stopped")
		return nil
	})

	return g.Wait()
}

func (s *Servers) markServing(ctx context.Context, ready ReadinessCheck) {
	if ready != nil {
		checkCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		err := ready(checkCtx)
		cancel()
		if err != nil {
			logger.Error("storage readiness check failed", "error", err)
			return
		}
	}
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}
