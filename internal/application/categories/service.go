package categories

import (
	"context"

	"easybazar-backend/internal/models"
	"easybazar-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

// Service lists categories. Read-only reference data.
type Service struct {
	DB *gorm.DB
}

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, apperr.Persistence("Failed to fetch categories", err)
	}
	return cats, nil
}
