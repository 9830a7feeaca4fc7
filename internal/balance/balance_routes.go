package balance

import (
	"github.com/prakhar-sonii/employee-management-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the balance endpoints on an already authenticated
// group.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	balances := r.Group("/balances")
	{
		balances.GET("/me",
			middleware.RBACAuthorize(rbacService, "balance", "read"),
			middleware.RateLimitByEmployee(5, 20),
			handler.GetMine,
		)
	}
}
