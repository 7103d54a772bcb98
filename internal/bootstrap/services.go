package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mleczna-droga/printbridge/config"
	"github.com/mleczna-droga/printbridge/internal/core"
	"github.com/mleczna-droga/printbridge/internal/data"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	"github.com/mleczna-droga/printbridge/internal/observability/statsd"
	"github.com/mleczna-droga/printbridge/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Directory *printing.Directory
	PrintJobs *service.PrintJobService
	Printers  *service.PrinterStatusService
	Events    *service.JobEventHub

	// History is nil unless JOB_HISTORY_ENABLED is set.
	History *data.Supervisor
	Redis   redis.UniversalClient
	Metrics *statsd.Client
}

// Close releases the connections owned by the container.
func (c *ServiceContainer) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Events != nil {
		c.Events.Close()
	}
	if c.PrintJobs != nil {
		c.PrintJobs.Wait()
	}
	if c.History != nil {
		c.History.Stop()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := c.Metrics.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close statsd: %w", err))
	}
	return errors.Join(errs...)
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// NewServices wires the printer directory, adapters, stores and services.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("service deps require an AppConfig")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	directory, err := LoadDirectory(cfg.Printers)
	if err != nil {
		return nil, err
	}
	logger.Info("printer directory loaded", "printers", directory.Len())

	formatter, err := NewLabelFormatter(cfg.Label)
	if err != nil {
		return nil, err
	}
	client := NewPrinterClient(cfg.Printers, logger)

	container := &ServiceContainer{
		Directory: directory,
		Metrics:   buildMetrics(logger, cfg.Observability.Metrics),
		Events:    service.NewJobEventHub(service.JobEventHubOptions{Logger: logger}),
	}

	cacheRepo, err := buildCacheRepository(container, cfg.Redis, logger)
	if err != nil {
		return nil, errors.Join(err, container.Close())
	}

	var history core.PrintJobRepository
	if cfg.History.Enabled {
		supervisor, supErr := NewDBSupervisor(DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
		if supErr != nil {
			return nil, errors.Join(supErr, container.Close())
		}
		container.History = supervisor
		history = data.NewPrintJobRepo(supervisor)
	}

	container.PrintJobs, err = service.NewPrintJobService(service.PrintJobServiceOptions{
		Directory: directory,
		Formatter: formatter,
		Deliverer: client,
		History:   history,
		Events:    container.Events,
		Metrics:   container.Metrics,
		Logger:    logger,
	})
	if err != nil {
		return nil, errors.Join(err, container.Close())
	}

	container.Printers, err = service.NewPrinterStatusService(service.PrinterStatusServiceOptions{
		Directory: directory,
		Prober:    client,
		Cache: core.NewPrinterStatusCache(core.PrinterStatusCacheOptions{
			Cache: cacheRepo,
			TTL:   cfg.Cache.PrinterStatusTTL,
		}),
		Metrics:     container.Metrics,
		Logger:      logger,
		Interval:    cfg.Printers.ProbeInterval,
		Concurrency: cfg.Printers.ProbeConcurrency,
	})
	if err != nil {
		return nil, errors.Join(err, container.Close())
	}

	return container, nil
}

// buildMetrics returns a statsd client. A failed dial degrades to a client
// that drops every metric.
func buildMetrics(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	client, err := statsd.NewClient(statsd.Config{
		Enabled:    cfg.IsEnabled(),
		Address:    cfg.StatsdAddress,
		Prefix:     cfg.Prefix,
		GlobalTags: cfg.GlobalTags,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		client, _ = statsd.NewClient(statsd.Config{Logger: logger})
	}
	return client
}

// buildCacheRepository picks Redis when enabled and falls back to process memory.
//
//nolint:ireturn // the cache backend is chosen at runtime.
func buildCacheRepository(
	container *ServiceContainer,
	cfg config.RedisConfig,
	logger *slog.Logger,
) (core.CacheRepository, error) {
	if !cfg.Enabled {
		return data.NewMemoryCacheRepo(), nil
	}
	client, err := ConnectRedis(DatabaseConfig{RedisConfig: cfg, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	container.Redis = client
	return data.NewRedisCacheRepo(client, cfg.KeyPrefix), nil
}

// ServiceOrchestrationConfig contains dependencies for running services.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// backgroundService describes a startable background component.
type backgroundService struct {
	name    string
	enabled bool
	start   func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	name string
	done <-chan struct{}
}

func buildBackgroundServices(cfg *ServiceOrchestrationConfig, enabled map[config.ServiceMode]bool) []backgroundService {
	svcs := cfg.Services
	return []backgroundService{
		{
			name:    "job history database",
			enabled: svcs.History != nil,
			start:   func(ctx context.Context) error { return svcs.History.Run(ctx) },
		},
		{
			name:    "printer prober",
			enabled: enabled[config.ServiceModeProber] && svcs.Printers != nil,
			start:   func(ctx context.Context) error { return svcs.Printers.Run(ctx) },
		},
	}
}

func launchBackground(ctx context.Context, svc backgroundService, errCh chan<- error, logger *slog.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := svc.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", svc.name, err)
			select {
			case errCh <- errMsg:
			case <-ctx.Done():
			default:
				logger.WarnContext(ctx, "dropping background service error", "service", svc.name, "error", errMsg)
			}
		}
	}()

	logger.InfoContext(ctx, "background service started", "service", svc.name)
	return done
}

func startBackgroundServices(
	ctx context.Context,
	services []backgroundService,
	errCh chan<- error,
	logger *slog.Logger,
) []backgroundServiceHandle {
	handles := make([]backgroundServiceHandle, 0, len(services))
	for _, svc := range services {
		if !svc.enabled {
			continue
		}
		handles = append(handles, backgroundServiceHandle{
			name: svc.name,
			done: launchBackground(ctx, svc, errCh, logger),
		})
	}
	return handles
}

// RunServicesWithShutdown starts every enabled service and blocks until a
// shutdown signal arrives or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil || cfg.Services == nil {
		return errors.New("service orchestration config missing AppConfig or services")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	background := buildBackgroundServices(cfg, enabled)
	errCh := make(chan error, errorChannelBufferSize(background))

	var server *HTTPServer
	if enabled[config.ServiceModeHTTP] {
		server, err = NewHTTPServer(&HTTPServerConfig{Config: cfg.Config, Services: cfg.Services, Logger: logger})
		if err != nil {
			return errors.Join(err, cfg.Services.Close())
		}
		go func() {
			if serveErr := server.Serve(cfg.Config.HTTP, logger); serveErr != nil {
				errCh <- fmt.Errorf("http server failed: %w", serveErr)
			}
		}()
	}

	handles := startBackgroundServices(serviceCtx, background, errCh, logger)

	return waitForShutdown(shutdownConfig{
		ctx:         serviceCtx,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  server,
		services:    cfg.Services,
		logger:      logger,
		backgrounds: handles,
	})
}

func errorChannelCapacity(services []backgroundService) int {
	count := 0
	for _, svc := range services {
		if svc.enabled {
			count++
		}
	}
	return count
}

// errorChannelBufferSize leaves room for every background service plus the HTTP server.
func errorChannelBufferSize(services []backgroundService) int {
	return errorChannelCapacity(services) + 1
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *HTTPServer
	services    *ServiceContainer
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop stops the HTTP server, waits for background services and
// releases shared connections.
func gracefulStop(cfg shutdownConfig) error {
	var errs []error
	if cfg.services.Events != nil {
		// Hijacked WebSocket connections are not tracked by Shutdown.
		cfg.services.Events.Close()
	}
	if cfg.httpServer != nil {
		if err := ShutdownHTTPServer(context.WithoutCancel(cfg.ctx), cfg.httpServer, cfg.logger); err != nil {
			errs = append(errs, err)
		}
	}

	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	if err := cfg.services.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
