package bootstrap

import (
	"context"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries through zap. Request and actor ids
// found on ctx fill in whatever the entry leaves empty.
type StdoutAuditLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &StdoutAuditLogger{logger: l.Named("audit"), now: time.Now}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	rid := entry.RequestID
	if rid == "" {
		rid = contextutil.GetRequestID(ctx)
	}

	fields := []zap.Field{
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
	}
	if rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	actorID := entry.ActorID
	if actorID == "" {
		actorID = contextutil.GetEmployeeID(ctx)
	}
	if actorID != "" {
		fields = append(fields, zap.String("actor_id", actorID))
	}
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}

	l.logger.Info("audit event", fields...)
}
