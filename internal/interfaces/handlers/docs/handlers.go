package docs

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed openapi.json
var openapiSpec []byte

// OpenAPI GET /api/openapi — the schema the docs page renders.
func OpenAPI(c *fiber.Ctx) error {
	c.Set("Content-Type", "application/json")
	return c.Send(openapiSpec)
}
