package leave_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prakhar-sonii/employee-management-system/internal/approval"
	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	"github.com/prakhar-sonii/employee-management-system/internal/leave"
	leaveerrors "github.com/prakhar-sonii/employee-management-system/internal/leave/errors"
	leaveMock "github.com/prakhar-sonii/employee-management-system/internal/leave/mock"
	"github.com/prakhar-sonii/employee-management-system/internal/middleware"
	workflowerrors "github.com/prakhar-sonii/employee-management-system/internal/workflow/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

func newContext(method, target, body string, role domain.Role) (*gin.Context, *httptest.ResponseRecorder, domain.Actor) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	actor := domain.Actor{ID: uuid.New(), Role: role}
	middleware.SetActor(c, actor)
	return c, w, actor
}

func TestLeaveHandler_Apply(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		h := leave.NewHandler(svc)
		body := `{"leave_type":"casual","start_date":"2026-03-02","end_date":"2026-03-04","reason":"trip"}`
		c, w, actor := newContext(http.MethodPost, "/leaves", body, domain.RoleEmployee)

		svc.EXPECT().
			Apply(gomock.Any(), actor, validApplyWithReason("trip")).
			Return(leave.LeaveResponse{ID: "l-1", Status: "pending", Days: 3}, nil)

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, 3, got.Days)
	})

	t.Run("missing field", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		h := leave.NewHandler(svc)
		c, w, _ := newContext(http.MethodPost, "/leaves", `{"leave_type":"casual"}`, domain.RoleEmployee)

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		h := leave.NewHandler(svc)
		body := `{"leave_type":"casual","start_date":"2026-03-02","end_date":"2026-03-04","reason":"trip"}`
		c, w, _ := newContext(http.MethodPost, "/leaves", body, domain.RoleEmployee)

		svc.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(leave.LeaveResponse{}, leaveerrors.ErrInsufficientBalance)

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INSUFFICIENT_BALANCE", env.Error.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader("{}"))

		h.Apply(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func validApplyWithReason(reason string) leave.ApplyLeaveRequest {
	req := validApply()
	req.Reason = reason
	return req
}

func TestLeaveHandler_List(t *testing.T) {
	svc := leaveMock.NewMockService(gomock.NewController(t))
	h := leave.NewHandler(svc)
	c, w, actor := newContext(http.MethodGet, "/leaves?forApproval=true&status=pending", "", domain.RoleManager)

	svc.EXPECT().
		List(gomock.Any(), actor, approval.ListQuery{ForApproval: true, Status: "pending"}).
		Return([]leave.LeaveResponse{{ID: "a"}, {ID: "b"}}, nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []leave.LeaveResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestLeaveHandler_Review(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		h := leave.NewHandler(svc)
		id := uuid.NewString()
		c, w, actor := newContext(http.MethodPut, "/leaves/"+id+"/review", `{"status":"approved","review_note":"ok"}`, domain.RoleManager)
		c.Params = gin.Params{{Key: "id", Value: id}}

		svc.EXPECT().
			Review(gomock.Any(), actor, id, leave.ReviewLeaveRequest{Status: "approved", ReviewNote: "ok"}).
			Return(leave.LeaveResponse{ID: id, Status: "approved"}, nil)

		h.Review(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	errs := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"already reviewed", workflowerrors.ErrAlreadyReviewed, http.StatusConflict, "ALREADY_REVIEWED"},
		{"forbidden", workflowerrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not found", workflowerrors.ErrRequestNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid status", workflowerrors.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	}
	for _, tc := range errs {
		t.Run(tc.name, func(t *testing.T) {
			svc := leaveMock.NewMockService(gomock.NewController(t))
			h := leave.NewHandler(svc)
			c, w, _ := newContext(http.MethodPut, "/leaves/x/review", `{"status":"approved"}`, domain.RoleManager)

			svc.EXPECT().Review(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(leave.LeaveResponse{}, tc.err)

			h.Review(c)

			assert.Equal(t, tc.status, w.Code)
			env := decodeEnvelope(t, w.Body.Bytes())
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestLeaveHandler_ReviewBody(t *testing.T) {
	t.Run("empty body reaches the service as no status", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		h := leave.NewHandler(svc)
		c, w, actor := newContext(http.MethodPut, "/leaves/x/review", "", domain.RoleManager)
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		svc.EXPECT().
			Review(gomock.Any(), actor, "x", leave.ReviewLeaveRequest{}).
			Return(leave.LeaveResponse{}, workflowerrors.ErrInvalidStatus)

		h.Review(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATUS", env.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		h := leave.NewHandler(svc)
		c, w, _ := newContext(http.MethodPut, "/leaves/x/review", `{"status":`, domain.RoleManager)

		h.Review(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestLeaveHandler_Delete(t *testing.T) {
	svc := leaveMock.NewMockService(gomock.NewController(t))
	h := leave.NewHandler(svc)
	id := uuid.NewString()
	c, w, actor := newContext(http.MethodDelete, "/leaves/"+id, "", domain.RoleEmployee)
	c.Params = gin.Params{{Key: "id", Value: id}}

	svc.EXPECT().Delete(gomock.Any(), actor, id).Return(nil)

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
