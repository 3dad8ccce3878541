package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"housingprep/internal/config"
	"housingprep/internal/infrastructure"
	"housingprep/internal/services"
	"housingprep/pkg/contracts"
)

// shutdownTimeout bounds flushing telemetry at exit
const shutdownTimeout = 10 * time.Second

// Application holds what every command needs: configuration, paths, the
// logger, telemetry and the preprocessing service
type Application struct {
	Name          string
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Service       *services.PreprocessingService
	MetricsFile   string
}

// NewApplication loads configuration and builds the application. A config
// that fails to load is reported and replaced by the defaults.
func NewApplication(name string) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", slog.String("error", err.Error()))
		cfg = config.Default()
	}
	return NewApplicationWithConfig(name, cfg)
}

// NewApplicationWithConfig builds the application from cfg
func NewApplicationWithConfig(name string, cfg *config.Config) (*Application, error) {
	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	if cfg.Logging.FilePath != "" && !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = filepath.Join(paths.BaseDir, cfg.Logging.FilePath)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}
	logger = logger.With("command", name)

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		logger.Warn("Failed to initialize OpenTelemetry, continuing without it",
			slog.String("error", err.Error()))
		providers = infrastructure.NoopProviders(logger)
	}

	metricsFile := cfg.Telemetry.MetricsFile
	if metricsFile == "" {
		metricsFile = paths.MetricsFile
	}

	return &Application{
		Name:          name,
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
		Service:       services.NewPreprocessingService(cfg, paths, logger, providers),
		MetricsFile:   metricsFile,
	}, nil
}

// Run calls fn with a context cancelled on interrupt, then shuts down
func (a *Application) Run(fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = infrastructure.WithRunID(ctx, infrastructure.GenerateRunID())
	start := time.Now()
	runErr := fn(ctx)

	if runErr != nil {
		a.Logger.ErrorContext(ctx, "Command failed",
			slog.String("error", runErr.Error()),
			slog.Duration("duration", time.Since(start)))
	} else {
		a.Logger.InfoContext(ctx, "Command completed",
			slog.Duration("duration", time.Since(start)))
	}

	if err := a.Stop(context.Background()); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// Stop writes the metrics textfile and shuts down telemetry and logging
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.OTelProviders.WriteMetricsFile(a.MetricsFile); err != nil {
		a.Logger.ErrorContext(ctx, "Error writing metrics file", slog.String("error", err.Error()))
		firstErr = err
	}

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		if firstErr == nil {
			firstErr = err
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	if err := infrastructure.CloseLogFile(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
