package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hvmanh/ttms-web/internal/backend"
)

// RoleFromToken reads the "vai_tro" claim out of a login token. The frontend
// does not hold the signing secret, so the signature is not verified here;
// an invalid token is caught reactively by the backend on the first call.
func RoleFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	role, _ := claims["vai_tro"].(string)
	if role != backend.RoleAdmin && role != backend.RoleStaff {
		return "", fmt.Errorf("token carries no usable role claim")
	}

	return role, nil
}
