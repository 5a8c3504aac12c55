package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/collecte-service/internal/config"
	"github.com/light-bringer/collecte-service/internal/scheduler"
	"github.com/light-bringer/collecte-service/internal/services"
	"github.com/light-bringer/collecte-service/internal/telemetry"
	httpapi "github.com/light-bringer/collecte-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration from environment variables
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log.Printf("Starting %s (%s)...", cfg.App.Name, cfg.App.Environment)
	log.Printf("Store driver: %s", cfg.Store.Driver)
	log.Printf("gRPC address: %s", cfg.Server.GRPCAddr())
	log.Printf("HTTP address: %s", cfg.Server.HTTPAddr())
	if cfg.Auth.JWTSecret == "" {
		log.Printf("WARNING: AUTH_JWT_SECRET is empty, every API call will be rejected")
	}

	// 2. Tracing
	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel, cfg.App.Name)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("[OTEL] shutdown error: %v", err)
		}
	}()

	// 3. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 4. gRPC server: health checks and reflection for liveness checks and grpcurl
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr())
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}
	go func() {
		log.Printf("gRPC server listening on %s", cfg.Server.GRPCAddr())
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// 5. HTTP server
	api := httpapi.NewServer(serviceOpts.Handlers, httpapi.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/api/", httpapi.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst, api))

	httpServer := &http.Server{
		Addr:         cfg.Server.HTTPAddr(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("HTTP server listening on %s", cfg.Server.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	// 6. Status refresher
	var sched *scheduler.Scheduler
	if cfg.Refresh.Enabled {
		loc, err := time.LoadLocation(cfg.Refresh.TimeZone)
		if err != nil {
			return fmt.Errorf("invalid REFRESH_TIMEZONE %q: %w", cfg.Refresh.TimeZone, err)
		}
		sched, err = scheduler.New(serviceOpts.Handlers.RefreshStatuses, scheduler.Options{
			Spec:     cfg.Refresh.Schedule,
			Timeout:  cfg.Refresh.Timeout,
			Location: loc,
		})
		if err != nil {
			return err
		}
		sched.Start()
	}

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// 7. Graceful shutdown handling
	<-ctx.Done()
	log.Println("Shutting down gracefully...")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			log.Printf("[SCHEDULER] stop error: %v", err)
		}
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	grpcServer.GracefulStop()

	return nil
}
