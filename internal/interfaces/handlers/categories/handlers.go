package categories

import (
	catsvc "easybazar-backend/internal/application/categories"
	"easybazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *catsvc.Service
}

// List GET /api/categories — {id, name, slug} ordered by name.
func (h *Handlers) List(c *fiber.Ctx) error {
	cats, err := h.Service.List(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, cats)
}
