package geo

import (
	"errors"

	geosvc "easybazar-backend/internal/application/geo"
	"easybazar-backend/internal/pkg/apperr"
	"easybazar-backend/internal/pkg/response"
	"easybazar-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Resolver *geosvc.Resolver
}

// GeocodeRequest mirrors the location descriptor submitted with listings.
type GeocodeRequest struct {
	Country string `json:"country" validate:"required,min=2"`
	Region  string `json:"region" validate:"required,min=2"`
	City    string `json:"city" validate:"required,min=1"`
}

// Geocode POST /api/geo/geocode — 200 {latitude, longitude},
// 404 when the upstream has no match, 502 when it fails.
func (h *Handlers) Geocode(c *fiber.Ctx) error {
	var req GeocodeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if err := validation.Struct(req); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	coords, err := h.Resolver.Resolve(c.Context(), geosvc.Location{
		Country: req.Country,
		Region:  req.Region,
		City:    req.City,
	}, nil, nil)
	if err != nil {
		if errors.Is(err, geosvc.ErrNoMatch) {
			return response.Error(c, "Location not found", fiber.StatusNotFound)
		}
		if apperr.Is(err, apperr.KindValidation) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		}
		return response.Error(c, err.Error(), fiber.StatusBadGateway)
	}
	return response.OK(c, coords)
}
