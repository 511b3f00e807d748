// Package middleware provides the HTTP middleware chain for the API.
package middleware

import (
	"strings"

	"campusmarket/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthOptional resolves the caller's identity from a bearer token when
// one is supplied. Endpoints do not require authentication, so a
// missing or invalid token never fails the request; a valid one puts
// the user ID into locals for request logs and traces.
func AuthOptional(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Next()
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Next()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Next()
	}

	// User ID travels in the "sub" claim (RFC 7519)
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		c.Locals("userID", sub)
	}

	return c.Next()
}
