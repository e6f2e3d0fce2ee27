package listings

import (
	"context"
	"errors"

	"easybazar-backend/internal/application/geo"
	"easybazar-backend/internal/models"
	"easybazar-backend/internal/pkg/apperr"
	"easybazar-backend/internal/pkg/money"
	"easybazar-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service assembles, persists and reads listings. Owner scoping on every
// write models the row-level authorization the hosted store enforced.
type Service struct {
	DB       *gorm.DB
	Resolver *geo.Resolver
}

// CreateListingInput is the client payload for POST /api/listings.
// Owner is never part of it; it comes from the session.
type CreateListingInput struct {
	Title       string   `json:"title" validate:"required,min=3,max=120"`
	Description string   `json:"description" validate:"required,min=10,max=5000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	CategoryID  *int64   `json:"category_id"`
	Status      string   `json:"status" validate:"omitempty,oneof=active sold hidden"`
	Country     string   `json:"country" validate:"required,min=2"`
	Region      string   `json:"region" validate:"required,min=2"`
	City        string   `json:"city" validate:"required,min=1"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Images      []string `json:"images" validate:"omitempty,max=10,dive,min=1"`
}

// ListingResponse is the API shape: the row plus its ordered image paths.
type ListingResponse struct {
	models.Listing
	Images []string `json:"images"`
}

// wrapPersistence classifies a transaction error. Kinds assigned inside the
// callback (the image cap, for one) pass through untouched so they keep
// their status mapping.
func wrapPersistence(err error, msg string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Persistence(msg, err)
}

func toResponse(l models.Listing) *ListingResponse {
	images := make([]string, 0, len(l.Images))
	for _, img := range l.Images {
		images = append(images, img.Path)
	}
	return &ListingResponse{Listing: l, Images: images}
}

// Create normalizes the price, resolves coordinates and persists the listing
// plus its image rows in one transaction.
func (s *Service) Create(ctx context.Context, owner uuid.UUID, in CreateListingInput) (*ListingResponse, error) {
	if owner == uuid.Nil {
		return nil, apperr.Auth("Unauthorized")
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	cents, err := money.ToCents(in.Price)
	if err != nil {
		return nil, err
	}

	coords, err := s.Resolver.Resolve(ctx, geo.Location{
		Country: in.Country,
		Region:  in.Region,
		City:    in.City,
	}, in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusActive
	}

	listing := &models.Listing{
		Owner:       owner,
		Title:       in.Title,
		Description: in.Description,
		PriceCents:  cents,
		CategoryID:  in.CategoryID,
		Status:      status,
		Country:     in.Country,
		Region:      in.Region,
		City:        in.City,
		Latitude:    coords.Latitude,
		Longitude:   coords.Longitude,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(listing).Error; err != nil {
			return err
		}
		return insertImages(tx, listing.ID, in.Images)
	})
	if err != nil {
		return nil, wrapPersistence(err, "Failed to create listing")
	}

	return s.GetByID(ctx, listing.ID)
}

// GetByID returns a listing with its image paths.
func (s *Service) GetByID(ctx context.Context, id int64) (*ListingResponse, error) {
	var listing models.Listing
	err := s.DB.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Listing not found")
		}
		return nil, apperr.Persistence("Failed to fetch listing", err)
	}
	return toResponse(listing), nil
}

// Delete removes an owner's listing; image rows go with it in the same
// transaction (cascade semantics).
func (s *Service) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	if owner == uuid.Nil {
		return apperr.Auth("Unauthorized")
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, "id = ? AND owner = ?", id, owner).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.ListingImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&listing).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Listing not found")
		}
		return wrapPersistence(err, "Failed to delete listing")
	}
	return nil
}
