package uploads

import (
	uploadsvc "easybazar-backend/internal/application/uploads"
	"easybazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *uploadsvc.Service
}

type uploadRequest struct {
	FileName string `json:"fileName"`
}

// ListingImage POST /api/uploads/listing-image — signed upload URL for a
// listing photo; the returned path goes into the listing's images list.
func (h *Handlers) ListingImage(c *fiber.Ctx) error {
	return h.signedURL(c, uploadsvc.BucketListingImages)
}

// Avatar POST /api/uploads/avatar — signed upload URL for a profile avatar.
func (h *Handlers) Avatar(c *fiber.Ctx) error {
	return h.signedURL(c, uploadsvc.BucketAvatars)
}

func (h *Handlers) signedURL(c *fiber.Ctx, bucket string) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil || req.FileName == "" {
		return response.Error(c, "fileName is required", fiber.StatusBadRequest)
	}
	result, err := h.Service.GetSignedUploadURL(c.Context(), bucket, req.FileName)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError)
	}
	return response.OK(c, result)
}
