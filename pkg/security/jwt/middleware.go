package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middleware for downstream handlers.
const (
	LocalUserID = "userId"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success it stores user id (subject), email and role in c.Locals.
// Verification failures are never differentiated to the client beyond 401.
func NewAuthMiddleware(verifier *Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		var tokenStr string
		if strings.Contains(authHeader, " ") {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = strings.TrimSpace(parts[1])
			} else {
				tokenStr = strings.TrimSpace(authHeader)
			}
		} else {
			tokenStr = strings.TrimSpace(authHeader)
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}

		c.Locals(LocalUserID, claims.Subject)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireAdmin allows the request through only when the auth middleware
// resolved an ADMIN role. Must be registered after NewAuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(LocalRole).(string); role != "ADMIN" {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
		}
		return c.Next()
	}
}
