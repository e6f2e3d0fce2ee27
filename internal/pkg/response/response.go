package response

import (
	"easybazar-backend/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error JSON shape: {"error": message}.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends data as-is with the given status.
func JSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// OK sends a 200 with data.
func OK(c *fiber.Ctx, data interface{}) error {
	return JSON(c, fiber.StatusOK, data)
}

// Created sends a 201 with data.
func Created(c *fiber.Ctx, data interface{}) error {
	return JSON(c, fiber.StatusCreated, data)
}

// Error sends {"error": message} with the given status.
func Error(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(ErrorBody{Error: message})
}

// Unauthorized sends a 401 error body.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}

// FromError maps a service error to the write-path status convention:
// Validation 400, Auth 401, NotFound 400 (row-level checks happen at the
// store, so a miss on a write reads as a bad request), Upstream 400,
// everything else 500. Read paths map NotFound to 404 themselves.
func FromError(c *fiber.Ctx, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindNotFound, apperr.KindUpstream:
		return Error(c, err.Error(), fiber.StatusBadRequest)
	case apperr.KindAuth:
		return Error(c, err.Error(), fiber.StatusUnauthorized)
	default:
		return Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
}
