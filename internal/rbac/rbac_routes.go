package rbac

import (
	"github.com/prakhar-sonii/employee-management-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the policy inspection endpoints for admins.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/admin/rbac")
	group.Use(middleware.RBACAuthorize(service, "employee", "manage"))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/roles/:role/permissions", handler.ListPermissions)
	}
}
