package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middleware.
const (
	LocalEmail      = "email"
	LocalBusinessID = "businessId"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT
// (HS256). On success it sets the caller's email and business id into
// the request locals; everything downstream scopes by those values only.
func NewAuthMiddleware(gen *Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "missing Authorization header")
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		var tokenStr string
		if strings.Contains(authHeader, " ") {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = strings.TrimSpace(parts[1])
			} else {
				// Fallback: treat entire header as token (for non-standard clients)
				tokenStr = strings.TrimSpace(authHeader)
			}
		} else {
			tokenStr = strings.TrimSpace(authHeader)
		}
		if tokenStr == "" {
			return unauthorized(c, "empty token")
		}

		claims, err := gen.Parse(tokenStr)
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(LocalEmail, claims.Subject)
		c.Locals(LocalBusinessID, claims.BusinessID)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, detail string) error {
	c.Set("WWW-Authenticate", "Bearer")
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"detail": detail})
}
