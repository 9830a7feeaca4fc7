package reimbursement

import (
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	idempotencyTTL time.Duration,
	logger *zap.Logger,
) {
	claims := r.Group("/reimbursements")
	{
		claims.GET("",
			middleware.RBACAuthorize(rbacService, "reimbursement", "read"),
			middleware.RateLimitByEmployee(5, 20),
			handler.List,
		)
		claims.GET("/:id",
			middleware.RBACAuthorize(rbacService, "reimbursement", "read"),
			handler.GetByID,
		)
		claims.POST("",
			middleware.RBACAuthorize(rbacService, "reimbursement", "create"),
			middleware.RateLimitByEmployee(1, 5),
			middleware.Idempotency(rdb, idempotencyTTL, logger),
			handler.Apply,
		)
		claims.PUT("/:id/review",
			middleware.RBACAuthorize(rbacService, "reimbursement", "review"),
			middleware.RateLimitByEmployee(2, 10),
			handler.Review,
		)
		claims.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "reimbursement", "delete"),
			middleware.RateLimitByEmployee(1, 5),
			handler.Delete,
		)
	}
}
