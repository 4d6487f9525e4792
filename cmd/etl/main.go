package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/mantlewave/quake-data-etl/internal/adapter/http"
	kafkaadapter "github.com/mantlewave/quake-data-etl/internal/adapter/kafka"
	"github.com/mantlewave/quake-data-etl/internal/config"
	"github.com/mantlewave/quake-data-etl/internal/domain"
	"github.com/mantlewave/quake-data-etl/internal/observability"
	"github.com/mantlewave/quake-data-etl/internal/pipeline"
	"github.com/mantlewave/quake-data-etl/internal/station"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Station coordinate enrichment is feature-flagged via STATION_FILE.
	var locator domain.StationLocator
	if cfg.StationFile != "" {
		dir, err := station.ReadFile(cfg.StationFile, station.ReadOptions{
			Delimiter:  cfg.StationFileDelim,
			StationCol: cfg.StationCol,
			LatCol:     cfg.StationLatCol,
			LonCol:     cfg.StationLonCol,
		})
		if err != nil {
			logger.Error("failed to load station file", "path", cfg.StationFile, "error", err)
			os.Exit(1)
		}
		locator = dir
		logger.Info("station coordinate enrichment enabled", "path", cfg.StationFile, "stations", dir.Len())
	} else {
		logger.Info("station coordinate enrichment disabled")
	}

	var estimator *domain.MagnitudeEstimator
	if cfg.MagnitudeRecompute {
		estimator = &domain.MagnitudeEstimator{}
		if cfg.MagnitudeAggregation == "median" {
			estimator.Aggregate = domain.Median
		}
		logger.Info("network magnitude recomputation enabled", "aggregation", cfg.MagnitudeAggregation)
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(cfg.SfileFormat, locator, estimator, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize, cfg.ParseWorkers)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
