package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sportconnect-backend/utils"
)

// Locals keys set by the auth middlewares.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalIsAdmin  = "is_admin"
)

// RequireAuth validates the Bearer access token and attaches the caller's
// identity to the request context. Missing or invalid tokens end the request
// with 401 before any handler runs.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication credentials were not provided",
			})
		}

		claims, err := utils.ParseAccessToken(token, secret)
		if err != nil {
			log.Printf("[AUTH] rejected token for %s: %v", c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired access token",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalIsAdmin, claims.IsAdmin)
		return c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present but lets the
// request through either way. Used on public reads that personalise output.
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		if claims, err := utils.ParseAccessToken(token, secret); err == nil {
			c.Locals(LocalUserID, claims.UserID)
			c.Locals(LocalUsername, claims.Username)
			c.Locals(LocalIsAdmin, claims.IsAdmin)
		}
		return c.Next()
	}
}

// RequireAdmin gates a route to administrators. It must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "administrator rights required",
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller's ID, or "" when anonymous.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// IsAdmin reports whether the authenticated caller is an administrator.
func IsAdmin(c *fiber.Ctx) bool {
	admin, _ := c.Locals(LocalIsAdmin).(bool)
	return admin
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
