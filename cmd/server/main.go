package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/templui/goalnote/internal/app"
	"github.com/templui/goalnote/internal/config"
	"github.com/templui/goalnote/internal/logger"
	"github.com/templui/goalnote/internal/routes"
)

const (
	shutdownTimeout = 15 * time.Second
	poolStatsPeriod = 15 * time.Second
)

func main() {
	cfg := config.Load()

	flush := logger.Init(logger.Options{
		Development: cfg.IsDevelopment(),
		AppName:     cfg.AppName,
		Environment: cfg.AppEnv,
		SentryDSN:   cfg.SentryDSN,
	})
	defer flush()

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		flush()
		os.Exit(1)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go recordPoolStats(ctx, app)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(app),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
		}
		return
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func recordPoolStats(ctx context.Context, app *app.App) {
	ticker := time.NewTicker(poolStatsPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.Metrics.RecordDBPoolStats(app.DB.Stats())
		}
	}
}
