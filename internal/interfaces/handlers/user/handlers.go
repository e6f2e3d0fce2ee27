package user

import (
	usersvc "easybazar-backend/internal/application/user"
	"easybazar-backend/internal/middleware"
	"easybazar-backend/internal/pkg/apperr"
	"easybazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *usersvc.Service
}

// Me GET /api/user — own user + profile.
func (h *Handlers) Me(c *fiber.Ctx) error {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	profile, err := h.Service.GetProfile(c.Context(), id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return response.FromError(c, err)
	}
	m, _ := middleware.GetUser(c).(map[string]interface{})
	email, _ := m["email"].(string)
	return response.OK(c, fiber.Map{
		"user":    fiber.Map{"id": id, "email": email},
		"profile": profile,
	})
}

// Update PUT /api/user — partial profile update.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	var in usersvc.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	profile, err := h.Service.UpdateProfile(c.Context(), id, in)
	if err != nil {
		return response.FromError(c, err)
	}
	m, _ := middleware.GetUser(c).(map[string]interface{})
	email, _ := m["email"].(string)
	return response.OK(c, fiber.Map{
		"user":    fiber.Map{"id": id, "email": email},
		"profile": profile,
	})
}

// PublicProfile GET /api/user/:id — selected fields only, no auth.
func (h *Handlers) PublicProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest)
	}
	profile, err := h.Service.GetProfile(c.Context(), id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return response.FromError(c, err)
	}
	return response.OK(c, profile)
}
