package bootstrap_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/bootstrap"
	"github.com/prakhar-sonii/employee-management-system/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []bootstrap.AuditLog
}

func (r *recordingAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	audit := &recordingAudit{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- bootstrap.Serve(ctx, ln, handler, config.ServerConfig{ReadTimeout: time.Second}, audit)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if assert.NoError(t, err) {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, "ok", string(body))
	}

	cancel()
	assert.NoError(t, <-done)

	audit.mu.Lock()
	defer audit.mu.Unlock()
	if assert.Len(t, audit.entries, 1) {
		assert.Equal(t, "SERVER_SHUTDOWN", audit.entries[0].Action)
	}
}

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := bootstrap.NewStdoutAuditLogger(zap.New(core))

	l.Log(context.Background(), bootstrap.AuditLog{
		Action:    "LEAVE_REQUEST_REVIEWED",
		Message:   "leave approved",
		RequestID: "req-9",
		ActorID:   "actor-1",
		Meta:      map[string]any{"status": "approved"},
	})

	entries := logs.FilterMessage("audit event").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "LEAVE_REQUEST_REVIEWED", fields["action"])
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, "actor-1", fields["actor_id"])
		assert.Equal(t, "audit", entries[0].LoggerName)
	}
}
