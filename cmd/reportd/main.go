// Command reportd serves methane reports over HTTP and, when the pipeline is
// enabled, renders override records from Kafka into a Kafka topic or S3.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/methane-report-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/methane-report-service/internal/adapter/kafka"
	s3adapter "github.com/couchcryptid/methane-report-service/internal/adapter/s3"
	"github.com/couchcryptid/methane-report-service/internal/config"
	"github.com/couchcryptid/methane-report-service/internal/observability"
	"github.com/couchcryptid/methane-report-service/internal/pipeline"
	"github.com/couchcryptid/methane-report-service/internal/report"
)

// readinessGroup is ready when every member is.
type readinessGroup []sharedobs.ReadinessChecker

func (g readinessGroup) CheckReadiness(ctx context.Context) error {
	for _, c := range g {
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	profile, err := cfg.Profile()
	if err != nil {
		logger.Error("failed to load report profile", "error", err)
		os.Exit(1)
	}

	builder, err := report.NewBuilder(profile, clockwork.NewRealClock(), metrics, logger)
	if err != nil {
		logger.Error("failed to build layouts", "error", err)
		os.Exit(1)
	}
	logger.Info("report builder ready", "layout", profile.Layout, "base_dir", profile.BaseDir, "layouts", builder.Layouts())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ready := readinessGroup{builder}
	var closers []io.Closer

	if cfg.PipelineEnabled {
		reader := kafkaadapter.NewReader(cfg, logger)
		closers = append(closers, reader)

		var loader pipeline.BatchLoader
		switch cfg.SinkDriver {
		case config.SinkS3:
			store, err := s3adapter.New(ctx, cfg, logger)
			if err != nil {
				logger.Error("failed to create s3 sink", "error", err)
				os.Exit(1)
			}
			loader = store
			logger.Info("s3 sink enabled", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		default:
			writer := kafkaadapter.NewWriter(cfg, logger)
			closers = append(closers, writer)
			loader = writer
			logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic)
		}

		transformer := pipeline.NewTransformer(builder, logger)
		p := pipeline.New(reader, transformer, loader, logger, metrics, nil, cfg.BatchSize)
		ready = append(ready, p)

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("kafka pipeline disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, builder, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
