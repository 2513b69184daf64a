package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/irfndi/wearsynth/internal/api"
	"github.com/irfndi/wearsynth/internal/api/handlers"
	"github.com/irfndi/wearsynth/internal/cache"
	"github.com/irfndi/wearsynth/internal/config"
	"github.com/irfndi/wearsynth/internal/device"
	"github.com/irfndi/wearsynth/internal/logging"
	"github.com/irfndi/wearsynth/internal/services"
	"github.com/irfndi/wearsynth/internal/telemetry"
)

const serviceName = "wearsynth"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment and config.yaml still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := telemetry.InitTelemetry(telemetryConfig(cfg)); err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetry.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to shutdown telemetry: %v\n", err)
		}
	}()

	logger := newLogger(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = logger.Shutdown(ctx)
	}()

	// Service components log through logrus.
	logrusLogger := logging.NewLogrusLogger(cfg.LogLevel, os.Stdout)

	ctx := context.Background()
	responseCache := newResponseCache(ctx, cfg, logrusLogger)
	defer func() {
		responseCache.LogStats()
		if err := responseCache.Close(); err != nil {
			logrusLogger.WithError(err).Warn("Failed to close response cache")
		}
	}()

	generator := services.NewGenerationService(logrusLogger, logger)
	registry, err := device.NewRegistryFromConfig(cfg, generator, logrusLogger)
	if err != nil {
		return fmt.Errorf("failed to build device registry: %w", err)
	}
	logRegisteredDevices(logger, registry)

	router := newRouter(cfg, registry, responseCache, logger)
	srv := newServer(cfg, api.WithCORS(router, cfg.Server.AllowedOrigins))

	serverErr := make(chan error, 1)
	go func() {
		logger.LogStartup(serviceName, cfg.Telemetry.ServiceVersion, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	logger.LogShutdown(serviceName, "signal received")

	// Give outstanding requests a deadline for completion
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logrusLogger.Info("Server exited gracefully")
	return nil
}

// logRegisteredDevices logs each device with its default query window.
func logRegisteredDevices(logger logging.Logger, registry handlers.DeviceRegistry) {
	for _, name := range registry.Names() {
		d, err := registry.Get(name)
		if err != nil {
			continue
		}
		q := d.DefaultQuery()
		logger.WithDevice(name).Info("Device registered",
			"default_start", q.Start.Format(time.RFC3339),
			"default_end", q.End.Format(time.RFC3339),
		)
	}
}

func telemetryConfig(cfg *config.Config) telemetry.TelemetryConfig {
	tc := telemetry.DefaultConfig()
	tc.Enabled = cfg.Telemetry.Enabled
	tc.Exporter = cfg.Telemetry.Exporter
	tc.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	tc.ServiceName = cfg.Telemetry.ServiceName
	tc.ServiceVersion = cfg.Telemetry.ServiceVersion
	tc.Environment = cfg.Environment
	tc.LogLevel = cfg.LogLevel
	return *tc
}

// newLogger exports logs over OTLP when telemetry is enabled with the otlp exporter and
// writes JSON (text in development) to stdout otherwise.
func newLogger(cfg *config.Config) *logging.StandardLogger {
	if cfg.Telemetry.Enabled && cfg.Telemetry.Exporter == telemetry.ExporterOTLP {
		return logging.NewStandardOTLPLogger(logging.OTLPConfig{
			Enabled:        true,
			Endpoint:       cfg.Telemetry.OTLPEndpoint,
			ServiceName:    cfg.Telemetry.ServiceName,
			ServiceVersion: cfg.Telemetry.ServiceVersion,
			Environment:    cfg.Environment,
			LogLevel:       cfg.LogLevel,
		})
	}
	return logging.NewStandardLogger(cfg.LogLevel, cfg.Environment)
}

// newResponseCache returns the configured cache backend. An unreachable Redis falls back to
// the in-memory cache so the API keeps serving.
func newResponseCache(ctx context.Context, cfg *config.Config, logger *logrus.Logger) cache.ResponseCache {
	ttl := cfg.Cache.TTLDuration()
	if cfg.Cache.Backend != config.CacheBackendRedis {
		return cache.NewInMemoryResponseCache(ttl, logger)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).WithField("addr", cfg.Redis.Addr()).Warn("Redis unavailable, using in-memory response cache")
		_ = client.Close()
		return cache.NewInMemoryResponseCache(ttl, logger)
	}
	return cache.NewRedisResponseCache(client, ttl, logger)
}

func newRouter(cfg *config.Config, registry *device.Registry, responseCache cache.ResponseCache, logger logging.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	api.SetupRoutes(router, registry, responseCache, logger, cfg.Telemetry.ServiceVersion)
	return router
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       15 * time.Second,
	}
}
