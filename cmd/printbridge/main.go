// Command printbridge runs the label print bridge: the HTTP job endpoint and
// the background printer prober.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mleczna-droga/printbridge/config"
	"github.com/mleczna-droga/printbridge/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger(config.ObservabilityConfig{LogLevel: "info", LogFormat: "json"})
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger = bootstrap.InitLogger(cfg.Observability)

	logStartupInfo(ctx, logger, &cfg)

	if err = bootstrap.ValidateServiceConfig(&cfg); err != nil {
		return err
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{Config: &cfg, Logger: logger})
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	return bootstrap.RunServicesWithShutdown(&bootstrap.ServiceOrchestrationConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting print bridge",
		"addr", cfg.HTTP.Addr,
		"tls", cfg.HTTP.TLSEnabled(),
		"dev", cfg.IsDev,
		"printer_port", cfg.Printers.Port,
		"job_history", cfg.History.Enabled,
		"redis", cfg.Redis.Enabled,
		"enabled_services", bootstrap.GetEnabledServices(cfg))
}
