package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/phaseGateTwo/cms-backend/internal/services"
)

// UserIDKey is the fiber.Ctx locals key the gate stores the authenticated
// user ID under.
const UserIDKey = "userID"

// RequireAuth returns the bearer-token gate. Requests whose path is on the
// public list pass through unmodified; an entry ending in "/" matches as a
// prefix, anything else matches exactly. The bare root "/" is always an
// exact match, never a prefix, so listing it does not unlock every path.
// Everything else must carry a valid "Authorization: Bearer <token>" header
// or is rejected with 401 before any handler runs.
func RequireAuth(tokens *services.TokenService, publicPaths ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, public := range publicPaths {
			if path == public {
				return c.Next()
			}
			if len(public) > 1 && strings.HasSuffix(public, "/") && strings.HasPrefix(path, public) {
				return c.Next()
			}
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or malformed authorization header",
			})
		}

		userID, ok := tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user ID attached by RequireAuth.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}
