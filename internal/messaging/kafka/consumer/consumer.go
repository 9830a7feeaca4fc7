package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prakhar-sonii/employee-management-system/internal/bootstrap"
	"github.com/prakhar-sonii/employee-management-system/internal/events"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeAudit turns request and employee lifecycle events into audit
// entries until ctx is cancelled. Undecodable messages are committed and
// skipped so one bad payload cannot block the partition.
func ConsumeAudit(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		entry, err := toAuditLog(msg)
		if err != nil {
			log.Error("decode lifecycle event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := ctx
		if entry.RequestID != "" {
			msgCtx = contextutil.WithRequestID(ctx, entry.RequestID)
		}
		audit.Log(msgCtx, entry)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
			continue
		}

		log.Debug("audit entry written",
			zap.String("topic", msg.Topic),
			zap.String("action", entry.Action),
			zap.String("request_id", entry.RequestID),
		)
	}
}

func toAuditLog(msg kafkago.Message) (bootstrap.AuditLog, error) {
	switch msg.Topic {
	case events.RequestLifecycleTopic:
		var e events.RequestLifecycleEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return bootstrap.AuditLog{}, err
		}
		if e.Kind == "" || e.EventType == "" {
			return bootstrap.AuditLog{}, fmt.Errorf("incomplete request event at offset %d", msg.Offset)
		}
		return bootstrap.AuditLog{
			Action:    strings.ToUpper(e.Kind + "_" + e.EventType),
			Message:   fmt.Sprintf("%s %s is %s", e.Kind, e.RecordID, e.Status),
			RequestID: requestID(msg, e.RequestID),
			ActorID:   e.ActorID,
			Meta: map[string]any{
				"record_id":   e.RecordID,
				"employee_id": e.EmployeeID,
				"status":      e.Status,
				"review_note": e.ReviewNote,
				"occurred_at": e.OccurredAt,
			},
		}, nil

	case events.EmployeeLifecycleTopic:
		var e events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return bootstrap.AuditLog{}, err
		}
		if e.EventType == "" {
			return bootstrap.AuditLog{}, fmt.Errorf("incomplete employee event at offset %d", msg.Offset)
		}
		return bootstrap.AuditLog{
			Action:    strings.ToUpper(e.EventType),
			Message:   fmt.Sprintf("employee %s (%s)", e.EmployeeID, e.Role),
			RequestID: requestID(msg, e.RequestID),
			ActorID:   e.ActorID,
			Meta: map[string]any{
				"employee_id": e.EmployeeID,
				"role":        e.Role,
				"occurred_at": e.OccurredAt,
			},
		}, nil

	default:
		return bootstrap.AuditLog{}, fmt.Errorf("unexpected topic %q", msg.Topic)
	}
}

// requestID prefers the payload value and falls back to the header the
// producer sets.
func requestID(msg kafkago.Message, fromPayload string) string {
	if fromPayload != "" {
		return fromPayload
	}
	for _, h := range msg.Headers {
		if h.Key == "request_id" {
			return string(h.Value)
		}
	}
	return ""
}
