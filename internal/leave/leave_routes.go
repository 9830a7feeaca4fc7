package leave

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
	leaves := r.Group("/leaves")
	{
		leaves.GET("",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			middleware.RateLimitByEmployee(5, 20),
			handler.List,
		)
		leaves.GET("/:id",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetByID,
		)
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.RateLimitByEmployee(1, 5),
			middleware.Idempotency(rdb, idempotencyTTL, logger),
			handler.Apply,
		)
		leaves.PUT("/:id/review",
			middleware.RBACAuthorize(rbacService, "leave", "review"),
			middleware.RateLimitByEmployee(2, 10),
			handler.Review,
		)
		leaves.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "leave", "delete"),
			middleware.RateLimitByEmployee(1, 5),
			handler.Delete,
		)
	}
}
