package listings

import (
	"strconv"

	listsvc "easybazar-backend/internal/application/listings"
	"easybazar-backend/internal/middleware"
	"easybazar-backend/internal/pkg/apperr"
	"easybazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *listsvc.Service
}

// List GET /api/listings — optional auth; owner=me is silently ignored for
// anonymous callers.
func (h *Handlers) List(c *fiber.Ctx) error {
	var q listsvc.ListQuery
	var err error
	if raw := c.Query("page"); raw != "" {
		if q.Page, err = strconv.Atoi(raw); err != nil {
			return response.Error(c, "page must be a number", fiber.StatusBadRequest)
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if q.Limit, err = strconv.Atoi(raw); err != nil {
			return response.Error(c, "limit must be a number", fiber.StatusBadRequest)
		}
	}
	q.Q = c.Query("q")
	q.Country = c.Query("country")
	q.Region = c.Query("region")
	q.City = c.Query("city")

	if owner := c.Query("owner"); owner != "" {
		if owner != "me" {
			return response.Error(c, "owner must be 'me'", fiber.StatusBadRequest)
		}
		if id, ok := middleware.CurrentUserID(c); ok {
			q.Owner = &id
		}
	}

	result, err := h.Service.List(c.Context(), q)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, result)
}

// Create POST /api/listings — 201 with the assembled listing.
func (h *Handlers) Create(c *fiber.Ctx) error {
	owner, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in listsvc.CreateListingInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	listing, err := h.Service.Create(c.Context(), owner, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, listing)
}

// GetByID GET /api/listings/:id — 404 for anything that does not resolve.
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Listing not found", fiber.StatusNotFound)
	}
	listing, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return response.FromError(c, err)
	}
	return response.OK(c, listing)
}

// Update PUT /api/listings/:id — partial update, owner only.
func (h *Handlers) Update(c *fiber.Ctx) error {
	owner, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest)
	}
	var in listsvc.UpdateListingInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	listing, err := h.Service.Update(c.Context(), owner, id, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, listing)
}

// Delete DELETE /api/listings/:id — owner only; images cascade.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	owner, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest)
	}
	if err := h.Service.Delete(c.Context(), owner, id); err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, fiber.Map{"ok": true})
}
