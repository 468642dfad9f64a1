package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jask/customerdesk/internal/analytics"
	"github.com/jask/customerdesk/internal/chart"
	"github.com/jask/customerdesk/internal/config"
	"github.com/jask/customerdesk/internal/logging"
	"github.com/jask/customerdesk/internal/metrics"
	"github.com/jask/customerdesk/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logFile, err := logging.OpenFile(cfg.Log.Path)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer logFile.Close()
	logger := logging.New(cfg.Log.Level, cfg.Log.JSON, logFile)
	logger.Info("starting customerdesk", "endpoint", cfg.Analytics.Endpoint(), "timeout", cfg.Analytics.Timeout)

	if written, err := config.WriteDefault(); err != nil {
		logger.Warn("could not write default config", "path", config.Path(), "err", err)
	} else if written {
		logger.Info("wrote default config", "path", config.Path())
	}

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatalf("metrics: %v", err)
	}
	metricsServer := startMetrics(cfg.Metrics.Address, logger)

	chart.Register()

	bindings, err := tui.ApplyKeyOverrides(tui.DefaultKeyBindings(), cfg.Keys)
	if err != nil {
		log.Fatalf("keys: %v", err)
	}

	client := analytics.NewClient(cfg.Analytics.Endpoint(), cfg.Analytics.Timeout, logger)
	app := tui.New(ctx, client, tui.Options{
		Currency:  cfg.UI.CurrencySymbol,
		BrowseDir: cfg.UI.BrowseDir,
		ExportDir: cfg.UI.ExportDir,
		Logger:    logger,
		Bindings:  bindings,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Printf("error: %v\n", err)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
		cancel()
	}
	logger.Info("customerdesk stopped")
}

// startMetrics serves /metrics when addr is set. A listener failure is logged
// and does not stop the screen.
func startMetrics(addr string, logger *slog.Logger) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		logger.Info("metrics server listening", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server exited", slog.Any("error", err))
		}
	}()
	return srv
}
