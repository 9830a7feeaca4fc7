package employee

import (
	"github.com/prakhar-sonii/employee-management-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the admin employee endpoints on an authenticated
// group.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	employees := r.Group("/admin/employees")
	employees.Use(middleware.RBACAuthorize(rbacService, "employee", "manage"))
	{
		employees.GET("",
			middleware.RateLimitByEmployee(3, 10),
			handler.GetAll,
		)

		employees.PUT("/:id/role",
			middleware.RateLimitByEmployee(0.5, 2),
			handler.UpdateRole,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByEmployee(0.2, 1),
			handler.Delete,
		)
	}
}
