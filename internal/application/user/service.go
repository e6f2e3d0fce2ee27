package user

import (
	"context"
	"errors"

	"easybazar-backend/internal/models"
	"easybazar-backend/internal/pkg/apperr"
	"easybazar-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service reads and updates public profiles.
type Service struct {
	DB *gorm.DB
}

// UpdateProfileInput is the partial payload for PUT /api/user.
type UpdateProfileInput struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	FullName  *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// GetProfile returns the profile for a user id.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Persistence("Failed to fetch profile", err)
	}
	return &profile, nil
}

// UpdateProfile writes only the supplied fields; a username change re-checks
// uniqueness.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*models.Profile, error) {
	if in.Username == nil && in.FullName == nil && in.AvatarURL == nil {
		return nil, apperr.Validation("No fields to update")
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Username != nil {
		var count int64
		err := s.DB.WithContext(ctx).Model(&models.Profile{}).
			Where("username = ? AND id <> ?", *in.Username, id).Count(&count).Error
		if err != nil {
			return nil, apperr.Persistence("Failed to check username", err)
		}
		if count > 0 {
			return nil, apperr.Validation("Username already taken")
		}
		updates["username"] = *in.Username
	}
	if in.FullName != nil {
		updates["full_name"] = *in.FullName
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}

	res := s.DB.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, apperr.Persistence("Failed to update profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("User not found")
	}
	return s.GetProfile(ctx, id)
}
