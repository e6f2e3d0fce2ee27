package listings

import (
	"easybazar-backend/internal/models"
	"easybazar-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

// replaceImages swaps the full image set for a listing: delete everything,
// then insert the new ordered list. A replace, not a merge — callers keeping
// existing images resend them. Runs inside the caller's transaction so a
// failed insert rolls the delete back too.
func replaceImages(tx *gorm.DB, listingID int64, paths []string) error {
	if err := tx.Where("listing_id = ?", listingID).Delete(&models.ListingImage{}).Error; err != nil {
		return err
	}
	return insertImages(tx, listingID, paths)
}

// insertImages creates image rows in the given order. No-op for an empty list.
func insertImages(tx *gorm.DB, listingID int64, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if len(paths) > models.MaxListingImages {
		return apperr.Validation("Too many images")
	}
	rows := make([]models.ListingImage, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, models.ListingImage{ListingID: listingID, Path: p})
	}
	return tx.Create(&rows).Error
}
