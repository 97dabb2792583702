package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/unemployment-dashboard/internal/adapter/chart"
	"github.com/couchcryptid/unemployment-dashboard/internal/adapter/dataset"
	httpadapter "github.com/couchcryptid/unemployment-dashboard/internal/adapter/http"
	"github.com/couchcryptid/unemployment-dashboard/internal/config"
	"github.com/couchcryptid/unemployment-dashboard/internal/dashboard"
	"github.com/couchcryptid/unemployment-dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// The dashboard cannot run without its dataset.
	table, err := dataset.NewLoader(logger).Load(cfg.DataFile)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.DataFile, "error", err)
		os.Exit(1)
	}

	svc := dashboard.New(table, dashboard.Options{
		SunburstWidth:  cfg.SunburstWidth,
		SunburstHeight: cfg.SunburstHeight,
		CacheSize:      cfg.CacheSize,
	}, logger, metrics)
	if cfg.CacheSize > 0 {
		logger.Info("dashboard memoization enabled", "cache_size", cfg.CacheSize)
	}

	renderer := chart.NewRenderer(cfg.ChartWidth, cfg.ChartHeight)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, renderer, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
