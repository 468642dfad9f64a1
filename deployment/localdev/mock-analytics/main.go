// Command mock-analytics stands in for the remote customer analytics service
// during local development.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	addr := flag.String("addr", envOr("MOCK_ANALYTICS_ADDR", ":8000"), "listen address")
	fixturePath := flag.String("fixture", os.Getenv("MOCK_ANALYTICS_FIXTURE"), "YAML response fixture; empty computes from the upload")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With(slog.String("component", "analytics-mock"))

	s := &server{logger: logger}
	if *fixturePath != "" {
		fx, err := loadFixture(*fixturePath)
		if err != nil {
			logger.Error("load fixture", slog.Any("error", err))
			os.Exit(1)
		}
		s.fixture = fx
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      newHandler(s),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		logger.Info("listening", slog.String("address", *addr), slog.Bool("fixture", s.fixture != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server exited", slog.Any("error", err))
			stop()
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", slog.Any("error", err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
