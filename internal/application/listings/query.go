package listings

import (
	"context"
	"strings"

	"easybazar-backend/internal/models"
	"easybazar-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 50
)

// ListQuery are the filters and pagination for GET /api/listings.
// Owner is the resolved "owner=me" identity; nil when anonymous or unfiltered.
type ListQuery struct {
	Page    int
	Limit   int
	Q       string
	Country string
	Region  string
	City    string
	Owner   *uuid.UUID
}

// SellerSummary is the denormalized public seller info attached to list items.
type SellerSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url"`
}

// ListItem is a listing enriched with images and its seller.
type ListItem struct {
	ListingResponse
	Seller *SellerSummary `json:"seller"`
}

// ListResult is the paginated response envelope.
type ListResult struct {
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int64      `json:"total"`
	Items []ListItem `json:"items"`
}

// List returns a page of listings, newest first, with image paths preloaded
// and seller summaries resolved in one bulk profile lookup per page.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	if q.Page == 0 {
		q.Page = defaultPage
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	if q.Page < 1 {
		return nil, apperr.Validation("page must be at least 1")
	}
	if q.Limit < 1 || q.Limit > maxLimit {
		return nil, apperr.Validation("limit must be between 1 and 50")
	}

	base := s.DB.WithContext(ctx).Model(&models.Listing{})
	if q.Q != "" {
		pat := "%" + strings.ToLower(strings.TrimSpace(q.Q)) + "%"
		base = base.Where("lower(title) LIKE ? OR lower(description) LIKE ?", pat, pat)
	}
	if q.Country != "" {
		base = base.Where("country = ?", q.Country)
	}
	if q.Region != "" {
		base = base.Where("region = ?", q.Region)
	}
	if q.City != "" {
		base = base.Where("city = ?", q.City)
	}
	if q.Owner != nil {
		base = base.Where("owner = ?", *q.Owner)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperr.Persistence("Failed to count listings", err)
	}

	var rows []models.Listing
	err := base.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("created_at DESC, id DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch listings", err)
	}

	sellers, err := s.sellerSummaries(ctx, rows)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ListItem{
			ListingResponse: *toResponse(row),
			Seller:          sellers[row.Owner],
		})
	}

	return &ListResult{Page: q.Page, Limit: q.Limit, Total: total, Items: items}, nil
}

// sellerSummaries fetches public profiles for all distinct owners in the page
// with a single query. One bulk lookup per page, never one per row.
func (s *Service) sellerSummaries(ctx context.Context, rows []models.Listing) (map[uuid.UUID]*SellerSummary, error) {
	owners := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		if !seen[row.Owner] {
			seen[row.Owner] = true
			owners = append(owners, row.Owner)
		}
	}
	out := make(map[uuid.UUID]*SellerSummary, len(owners))
	if len(owners) == 0 {
		return out, nil
	}

	var profiles []models.Profile
	if err := s.DB.WithContext(ctx).Where("id IN ?", owners).Find(&profiles).Error; err != nil {
		return nil, apperr.Persistence("Failed to fetch sellers", err)
	}
	for _, p := range profiles {
		out[p.ID] = &SellerSummary{ID: p.ID, Username: p.Username, AvatarURL: p.AvatarURL}
	}
	return out, nil
}
