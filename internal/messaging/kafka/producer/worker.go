package producer

import (
	"context"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/messaging/kafka"

	"go.uber.org/zap"
)

const defaultBatchSize = 50

// Observer is notified about each publish attempt.
type Observer interface {
	OutboxPublished(topic string)
	OutboxFailed(topic string)
}

type nopObserver struct{}

func (nopObserver) OutboxPublished(string) {}
func (nopObserver) OutboxFailed(string)    {}

// Relay moves pending outbox rows to Kafka.
type Relay struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	observer  Observer
	batchSize int
	logger    *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, observer Observer, logger ...*zap.Logger) *Relay {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Relay{
		repo:      repo,
		writer:    writer,
		observer:  observer,
		batchSize: defaultBatchSize,
		logger:    l.Named("kafka.producer.worker"),
	}
}

// Run polls the outbox every pollInterval until ctx is cancelled.
func (r *Relay) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := r.ProcessPending(ctx); err != nil {
				r.logger.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessPending publishes one batch and returns how many events were sent.
// A failed publish is recorded on the row and does not stop the batch.
func (r *Relay) ProcessPending(ctx context.Context) (int, error) {
	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		if err := publishEvent(ctx, r.writer, event); err != nil {
			r.observer.OutboxFailed(event.Topic)
			r.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("request_id", event.RequestID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.logger.Error("mark outbox failed failed",
					zap.String("outbox_id", event.ID),
					zap.Error(markErr),
				)
			}
			continue
		}

		r.observer.OutboxPublished(event.Topic)

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			// the message is already on the topic; consumers must tolerate a redelivery
			r.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		sent++
		r.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return sent, nil
}
