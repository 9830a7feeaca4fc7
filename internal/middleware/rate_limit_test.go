package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	"github.com/prakhar-sonii/employee-management-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitByEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	first := domain.Actor{ID: uuid.New(), Role: domain.RoleEmployee}
	second := domain.Actor{ID: uuid.New(), Role: domain.RoleEmployee}
	var current *domain.Actor

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		if current != nil {
			middleware.SetActor(c, *current)
		}
		c.Next()
	}, middleware.RateLimitByEmployee(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	do := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		return w.Code
	}

	current = &first
	assert.Equal(t, http.StatusNoContent, do())
	assert.Equal(t, http.StatusTooManyRequests, do())

	current = &second
	assert.Equal(t, http.StatusNoContent, do())

	current = nil
	assert.Equal(t, http.StatusNoContent, do())
	assert.Equal(t, http.StatusNoContent, do())
}

type observation struct {
	method, route, status string
}

type recordingObserver struct {
	seen []observation
}

func (o *recordingObserver) ObserveHTTP(method, route, status string, _ time.Duration) {
	o.seen = append(o.seen, observation{method, route, status})
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(middleware.Metrics(obs))
	r.GET("/leaves/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/leaves/123", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, []observation{
		{"GET", "/leaves/:id", "200"},
		{"GET", "unmatched", "404"},
	}, obs.seen)
}
