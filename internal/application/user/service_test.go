package user

import (
	"context"
	"testing"

	"easybazar-backend/internal/models"
	"easybazar-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T) (*Service, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}))

	id := uuid.New()
	require.NoError(t, db.Create(&models.Profile{ID: id, Username: "anna_k", FullName: "Anna Kowalska"}).Error)
	return &Service{DB: db}, id
}

func strPtr(s string) *string { return &s }

func TestGetProfile(t *testing.T) {
	svc, id := setupUserService(t)

	profile, err := svc.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "anna_k", profile.Username)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUpdateProfile_PartialWrite(t *testing.T) {
	svc, id := setupUserService(t)

	profile, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{FullName: strPtr("Anna K.")})
	require.NoError(t, err)
	assert.Equal(t, "Anna K.", profile.FullName)
	assert.Equal(t, "anna_k", profile.Username)
}

func TestUpdateProfile_EmptyPatchRejected(t *testing.T) {
	svc, id := setupUserService(t)

	_, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "No fields to update", err.Error())
}

func TestUpdateProfile_UsernameUniqueness(t *testing.T) {
	svc, id := setupUserService(t)
	require.NoError(t, svc.DB.Create(&models.Profile{ID: uuid.New(), Username: "taken", FullName: "Other"}).Error)

	_, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{Username: strPtr("taken")})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	// keeping your own username is fine
	profile, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{Username: strPtr("anna_k")})
	require.NoError(t, err)
	assert.Equal(t, "anna_k", profile.Username)
}

func TestUpdateProfile_RejectsBadAvatarURL(t *testing.T) {
	svc, id := setupUserService(t)

	_, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{AvatarURL: strPtr("not a url")})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{FullName: strPtr("Nobody")})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
