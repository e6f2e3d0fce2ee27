package auth

import (
	"context"
	"errors"

	"easybazar-backend/internal/models"
	"easybazar-backend/internal/pkg/apperr"
	"easybazar-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service owns account lifecycle: sign-up, credential checks, password
// changes, account removal. Sessions are the middleware's concern.
type Service struct {
	DB *gorm.DB
}

// SignUpProfile carries the public profile created with the account.
type SignUpProfile struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	FullName string `json:"fullName" validate:"required,min=1,max=100"`
}

// SignUpInput for POST /api/auth/sign-up.
type SignUpInput struct {
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=8"`
	Profile  SignUpProfile `json:"profile" validate:"required"`
}

// SignUp checks username availability before touching the identity table,
// then creates user and profile together.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Profile{}).Where("username = ?", in.Profile.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: in.Email, PasswordHash: string(hash)}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			ID:       user.ID,
			Username: in.Profile.Username,
			FullName: in.Profile.FullName,
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, apperr.Persistence("Failed to create account", err)
	}
	return user, nil
}

// SignIn verifies email+password and returns the user with their profile.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, *models.Profile, error) {
	if email == "" || password == "" {
		return nil, nil, ErrEmailPasswordRequired
	}
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}
	var profile models.Profile
	if err := s.DB.WithContext(ctx).First(&profile, "id = ?", user.ID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
	}
	return &user, &profile, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAuthenticated
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrIncorrectPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(&user).Update("password_hash", string(hash)).Error
}

// DeleteAccount removes the user with their profile, listings and listing
// images in one transaction.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&models.Listing{}).Where("owner = ?", userID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := tx.Where("listing_id IN ?", ids).Delete(&models.ListingImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("owner = ?", userID).Delete(&models.Listing{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&models.User{}).Error
	})
}
