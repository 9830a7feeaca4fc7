package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prakhar-sonii/employee-management-system/internal/bootstrap"
	"github.com/prakhar-sonii/employee-management-system/internal/config"
	"github.com/prakhar-sonii/employee-management-system/internal/messaging/kafka"
	"github.com/prakhar-sonii/employee-management-system/internal/messaging/kafka/producer"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/connection"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/metrics"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return errors.New("kafka.broker is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Postgres.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	m := metrics.NewMetricsService()
	relay := producer.NewRelay(kafka.NewOutboxRepository(sqlDB), kafkaWriter, m, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// publish counters are scraped from the worker's own /metrics
	ln, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	go func() {
		if err := bootstrap.Serve(ctx, ln, mux, cfg.Server, bootstrap.NewStdoutAuditLogger(logger)); err != nil {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	relay.Run(ctx, cfg.Kafka.PollInterval)

	log.Info("worker shutting down")
	return nil
}
