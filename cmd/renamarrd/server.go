package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	v1 "github.com/vmunix/renamarr/internal/api/v1"
	"github.com/vmunix/renamarr/internal/config"
	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/scheduler"
	"github.com/vmunix/renamarr/internal/server"
)

const shutdownTimeout = 30 * time.Second

func runServer(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	svc, err := server.Open(cfg, version, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("close services", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := jobs.NewQueue(ctx, svc.Runner, cfg.Jobs.MaxJobs, logger)
	runner := server.NewRunner(logger)

	// === Scheduler ===
	if watches := server.Watches(cfg); len(watches) > 0 {
		sched, err := scheduler.New(queue, watches, logger)
		if err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
		runner.Add("scheduler", sched)
	}

	// === Maintenance ===
	maint := server.NewMaintenance(server.MaintenanceConfig{
		EventRetention: cfg.Events.Retention,
	}, svc.CachePruner(), svc.History, svc.EventLog, logger)
	runner.Add("maintenance", server.ComponentFunc(maint.Run))

	// === HTTP ===
	deps := v1.ServerDeps{
		Jobs:      queue,
		Runner:    svc.Runner,
		Searcher:  svc.Matcher,
		History:   svc.History,
		Presets:   svc.Presets,
		MediaInfo: svc.MediaInfo,
		Bus:       svc.Bus,
		EventLog:  svc.EventLog,
	}
	if svc.Plex != nil {
		deps.Plex = svc.Plex
	}
	api, err := v1.New(deps, v1.Config{
		Version:        version,
		AllowedOrigins: cfg.Server.CORSOrigins,
	}, logger)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           newHandler(mux, cfg.Server, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	runner.Add("http", serveHTTP(srv, logger))

	logger.Info("server starting",
		"addr", srv.Addr,
		"database", cfg.Server.Database,
		"tmdb", cfg.TMDB.APIKey != "",
		"tvdb", cfg.TVDB.APIKey != "",
		"mediainfo", svc.MediaInfo.Available(),
		"plex", svc.Plex != nil,
		"watches", len(cfg.Watch),
		"log_level", cfg.Server.LogLevel,
	)

	runErr := runner.Run(ctx)
	stop()
	logger.Info("shutting down")

	// Jobs share ctx, so they stop at their next file.
	waitCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := queue.Wait(waitCtx); err != nil {
		logger.Warn("jobs still running at shutdown", "error", err)
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("server stopped")
	return nil
}

// serveHTTP runs srv until ctx is done, then shuts it down gracefully.
func serveHTTP(srv *http.Server, log *slog.Logger) server.Component {
	return server.ComponentFunc(func(ctx context.Context) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("listen: %w", err)
		case <-ctx.Done():
		}

		log.Info("http server stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
}
