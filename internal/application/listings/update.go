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

// UpdateListingInput is the partial payload for PUT /api/listings/:id.
// Absent fields stay untouched; nil pointers mean "not supplied".
type UpdateListingInput struct {
	Title       *string   `json:"title" validate:"omitempty,min=3,max=120"`
	Description *string   `json:"description" validate:"omitempty,min=10,max=5000"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	CategoryID  *int64    `json:"category_id"`
	Status      *string   `json:"status" validate:"omitempty,oneof=active sold hidden"`
	Country     *string   `json:"country" validate:"omitempty,min=2"`
	Region      *string   `json:"region" validate:"omitempty,min=2"`
	City        *string   `json:"city" validate:"omitempty,min=1"`
	Latitude    *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Images      *[]string `json:"images" validate:"omitempty,max=10,dive,min=1"`
}

func (in UpdateListingInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Price == nil &&
		in.CategoryID == nil && in.Status == nil && in.Country == nil &&
		in.Region == nil && in.City == nil && in.Latitude == nil &&
		in.Longitude == nil && in.Images == nil
}

// Update writes only the supplied fields. A partial location edit without
// full coordinates re-resolves geolocation from the merged view (new fields
// overlaid on the stored country/region/city). An `images` field, even empty,
// replaces the whole image set. Field writes and image replacement share one
// transaction; the post-update state is re-read before returning.
func (s *Service) Update(ctx context.Context, owner uuid.UUID, id int64, in UpdateListingInput) (*ListingResponse, error) {
	if owner == uuid.Nil {
		return nil, apperr.Auth("Unauthorized")
	}
	if in.empty() {
		return nil, apperr.Validation("No fields to update")
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var current models.Listing
	err := s.DB.WithContext(ctx).First(&current, "id = ? AND owner = ?", id, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Listing not found")
		}
		return nil, apperr.Persistence("Failed to fetch listing", err)
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		cents, err := money.ToCents(*in.Price)
		if err != nil {
			return nil, err
		}
		updates["price_cents"] = cents
	}
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Country != nil {
		updates["country"] = *in.Country
	}
	if in.Region != nil {
		updates["region"] = *in.Region
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.Latitude != nil {
		updates["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		updates["longitude"] = *in.Longitude
	}

	locationChanged := in.Country != nil || in.Region != nil || in.City != nil
	if locationChanged && (in.Latitude == nil || in.Longitude == nil) {
		merged := geo.Merge(
			geo.Location{Country: current.Country, Region: current.Region, City: current.City},
			geo.Location{Country: deref(in.Country), Region: deref(in.Region), City: deref(in.City)},
		)
		coords, err := s.Resolver.Resolve(ctx, merged, in.Latitude, in.Longitude)
		if err != nil {
			return nil, err
		}
		updates["latitude"] = coords.Latitude
		updates["longitude"] = coords.Longitude
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Listing{}).Where("id = ? AND owner = ?", id, owner).Updates(updates).Error; err != nil {
				return err
			}
		}
		if in.Images != nil {
			return replaceImages(tx, id, *in.Images)
		}
		return nil
	})
	if err != nil {
		return nil, wrapPersistence(err, "Failed to update listing")
	}

	return s.GetByID(ctx, id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
