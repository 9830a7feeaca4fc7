package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	autherrors "github.com/prakhar-sonii/employee-management-system/internal/auth/errors"
	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/contextutil"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleResolver looks up an employee's current role.
type RoleResolver interface {
	RoleOf(ctx context.Context, id uuid.UUID) (domain.Role, error)
}

// AuthMiddleware verifies the bearer token (or access_token cookie) and
// stores the caller on the context. The role is re-read from roles on every
// request so a promotion or demotion applies without a new login.
func AuthMiddleware(secret string, roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}
		rawID, _ := claims["employee_id"].(string)
		employeeID, err := uuid.Parse(rawID)
		if err != nil {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		role, err := roles.RoleOf(c.Request.Context(), employeeID)
		if err != nil {
			if apperror.CodeOf(err) == apperror.CodeNotFound {
				abortWith(c, autherrors.ErrAccountNotFound)
				return
			}
			abortWith(c, err)
			return
		}

		SetActor(c, domain.Actor{ID: employeeID, Role: role})
		ctx := contextutil.WithEmployeeID(c.Request.Context(), employeeID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
	c.Abort()
}
