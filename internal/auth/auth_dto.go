package auth

import (
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/employee"
)

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Department string `json:"department"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string                    `json:"access_token"`
	ExpiresAt   time.Time                 `json:"expires_at"`
	Employee    employee.EmployeeResponse `json:"employee"`
}
