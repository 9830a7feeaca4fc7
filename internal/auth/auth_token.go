package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the access token payload. Role is informational: the
// middleware re-reads the current role on every request.
type Claims struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

func signToken(cfg TokenConfig, employeeID, role string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(cfg.TTL)
	claims := Claims{
		EmployeeID: employeeID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	return signed, expiresAt, err
}
