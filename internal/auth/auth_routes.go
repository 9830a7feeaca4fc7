package auth

import (
	"github.com/prakhar-sonii/employee-management-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the identity endpoints. authMW guards the routes
// that need a caller.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", authMW, middleware.RateLimitByEmployee(2, 5), handler.Me)
	}
}
