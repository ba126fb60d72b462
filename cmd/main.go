package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/wellguard/internal/adapters/assets"
	"github.com/okian/wellguard/internal/adapters/chart"
	"github.com/okian/wellguard/internal/adapters/http/api"
	"github.com/okian/wellguard/internal/adapters/http/site"
	"github.com/okian/wellguard/internal/adapters/http/swagger"
	app "github.com/okian/wellguard/internal/app"
	"github.com/okian/wellguard/internal/config"
	"github.com/okian/wellguard/internal/domain/catalog"
	"github.com/okian/wellguard/pkg/logger"
	"github.com/okian/wellguard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 15 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Only the wellguard registry is served; drop the default collectors.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1) //nolint:gocritic // nothing to clean up yet
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
	)

	handler, err := buildHandler(ctx, cfg, loggerInstance)
	if err != nil {
		os.Stderr.WriteString("failed to start analyzer: " + err.Error() + "\n")
		os.Exit(1)
	}

	go startSystemMetricsUpdater(ctx, metrics.RefreshInterval())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("asset_driver", cfg.AssetDriver),
			logger.String("background", cfg.BackgroundPath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildHandler wires the analyzer and all routes from cfg. A catalog or
// asset store that cannot be set up is a start-up error.
func buildHandler(ctx context.Context, cfg *config.Config, log logger.Logger) (http.Handler, error) {
	cat := catalog.New()
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	store, err := assets.Open(ctx, assets.Config{
		Driver: assets.Driver(cfg.AssetDriver),
		Root:   cfg.AssetRoot,
		S3: assets.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
			Prefix:    cfg.S3Prefix,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open asset store: %w", err)
	}

	analyzer := app.New(
		app.WithLogger(log.Named("analyzer")),
		app.WithCatalog(cat),
		app.WithAssets(store),
		app.WithChart(chart.New(chart.WithSize(cfg.ChartWidth, cfg.ChartHeight))),
		app.WithBackground(cfg.BackgroundPath, site.BackgroundPath),
	)

	mux := http.NewServeMux()
	site.Register(ctx, mux, site.NewHandler(analyzer, log.Named("site")))
	api.NewServer().Register(ctx, mux)
	swagger.Register(ctx, mux)

	return api.RequestID(mux), nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Average pause over the life of the process
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
