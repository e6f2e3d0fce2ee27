package middleware

import (
	"easybazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. 401 {"error":"Unauthorized"} if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentUserID(c); !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// GetUser returns the raw session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// CurrentUserID returns the authenticated caller's id, if any. Routes with
// optional auth call this directly instead of going through RequireAuth.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	u := c.Locals(userLocal)
	if u == nil {
		return uuid.Nil, false
	}
	m, ok := u.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	idStr, _ := m["id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
