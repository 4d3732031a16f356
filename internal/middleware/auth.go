// Package middleware provides HTTP middleware for the application.
package middleware

import (
	"strings"

	"stablemart/internal/models"
	"stablemart/internal/services/siwe"
	"stablemart/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware resolves the bearer session token to a user and stores it
// in the request context.
type AuthMiddleware struct {
	authService siwe.Service
}

func NewAuthMiddleware(authService siwe.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	user, err := m.authService.ValidateToken(token)
	if err != nil {
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals("user", user)
	c.Locals("userID", user.ID)
	return c.Next()
}

// RequireAdmin gates a route to admin users. It must run after Handler.
func RequireAdmin(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok || user == nil {
		return utils.Unauthorized(c, "unauthorized")
	}
	if user.Role != models.RoleAdmin {
		return utils.Forbidden(c, "insufficient permissions")
	}
	return c.Next()
}

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok || user == nil {
		return nil, fiber.ErrUnauthorized
	}
	return user, nil
}
