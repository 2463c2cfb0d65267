// Package auth verifies the bearer tokens issued by the identity service.
// This service never issues tokens of its own; login and account
// management live with the external identity collaborator.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"helpdesk/internal/shared/authorization"
)

type Claims struct {
	UserID uint                   `json:"user_id"`
	Role   authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("token missing user ID")
	}

	return claims, nil
}

// Actor builds the authenticated principal from verified claims. Unknown
// role strings collapse to end_user, never to something more privileged.
func (c *Claims) Actor() authorization.Actor {
	return authorization.Actor{
		ID:   c.UserID,
		Role: authorization.ParseUserRole(c.Role.String()),
	}
}
