package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildfire-dashboard/internal/adapter/datasource"
	httpadapter "github.com/couchcryptid/wildfire-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/wildfire-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/wildfire-dashboard/internal/config"
	"github.com/couchcryptid/wildfire-dashboard/internal/loader"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
	"github.com/couchcryptid/wildfire-dashboard/internal/refresh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Snapshot source, optionally behind the document cache.
	var (
		source loader.Source
		dir    *datasource.DirSource
	)
	switch cfg.DataSource {
	case config.SourceHTTP:
		source = datasource.NewHTTPSource(cfg.DataBaseURL, cfg.DataTimeout, metrics)
		logger.Info("snapshot source", "kind", "http", "base_url", cfg.DataBaseURL)
	default:
		dir = datasource.NewDirSource(cfg.DataDir, metrics)
		source = dir
		logger.Info("snapshot source", "kind", "dir", "root", dir.Root())
	}

	var invalidator refresh.Invalidator
	var cached *datasource.CachedSource
	if cfg.DataCacheSize > 0 {
		cached = datasource.NewCachedSource(source, cfg.DataCacheSize, metrics)
		source = cached
		invalidator = cached
		logger.Info("document cache enabled", "size", cfg.DataCacheSize)
	} else {
		logger.Info("document cache disabled")
	}

	ld := loader.New(source, loader.Options{DateKey: cfg.DateKey, Location: cfg.DateLocation, Clock: clock}, logger, metrics)
	refresher := refresh.NewRefresher(invalidator, ld, logger, metrics)

	// Invalidate cached documents when files under the data root change.
	if dir != nil && cached != nil && cfg.DataWatch {
		watcher, err := datasource.NewWatcher(dir.Root(), cached, logger, metrics)
		if err != nil {
			logger.Warn("snapshot watcher disabled", "error", err)
		} else {
			go func() {
				if err := watcher.Run(ctx); err != nil {
					logger.Error("snapshot watcher error", "error", err)
				}
			}()
		}
	}

	if cfg.RefreshSchedule != "" {
		scheduler, err := refresh.NewScheduler(cfg.RefreshSchedule, refresher, ld.Snapshot, logger)
		if err != nil {
			logger.Error("failed to create refresh scheduler", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := scheduler.Run(ctx); err != nil {
				logger.Error("refresh scheduler error", "error", err)
			}
		}()
	}

	var reader *kafkaadapter.Reader
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		consumer := refresh.NewConsumer(reader, refresher, logger, metrics)
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Error("notice consumer error", "error", err)
			}
		}()
	} else {
		logger.Info("snapshot notices disabled")
	}

	srv := httpadapter.NewServer(httpadapter.Options{
		Addr:            cfg.HTTPAddr,
		Debounce:        cfg.ResizeDebounce,
		LiveGrace:       cfg.LiveGrace,
		ExportWidth:     cfg.ExportWidth,
		ExportHeight:    cfg.ExportHeight,
		DisplayLocation: cfg.DisplayLocation,
		Clock:           clock,
	}, ld, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Warm the cache for today's snapshot in the background.
	go func() {
		if err := ld.Prewarm(ctx, ld.Snapshot()); err != nil {
			logger.Warn("initial prewarm failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
