package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/prakhar-sonii/employee-management-system/internal/bootstrap"
	"github.com/prakhar-sonii/employee-management-system/internal/config"
	"github.com/prakhar-sonii/employee-management-system/internal/events"
	"github.com/prakhar-sonii/employee-management-system/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer writes an audit entry for every lifecycle event until SIGINT
// or SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return errors.New("kafka.broker is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		GroupID:        cfg.Kafka.GroupID,
		GroupTopics:    []string{events.RequestLifecycleTopic, events.EmployeeLifecycleTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeAudit(ctx, reader, bootstrap.NewStdoutAuditLogger(logger), logger)

	log.Info("consumer shutting down")
	return nil
}
