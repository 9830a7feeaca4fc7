package middleware

import (
	"github.com/prakhar-sonii/employee-management-system/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContextKey string

const (
	ContextEmployeeID ContextKey = "employee_id"
	ContextRole       ContextKey = "role"
)

// SetActor stores the resolved caller on the gin context.
func SetActor(c *gin.Context, actor domain.Actor) {
	c.Set(string(ContextEmployeeID), actor.ID.String())
	c.Set(string(ContextRole), actor.Role.String())
}

// ActorFromContext reads back what AuthMiddleware stored. It reports false
// when the request was not authenticated.
func ActorFromContext(c *gin.Context) (domain.Actor, bool) {
	id, err := uuid.Parse(c.GetString(string(ContextEmployeeID)))
	if err != nil {
		return domain.Actor{}, false
	}
	role, err := domain.ParseRole(c.GetString(string(ContextRole)))
	if err != nil {
		return domain.Actor{}, false
	}
	return domain.Actor{ID: id, Role: role}, true
}
