package listings

import (
	"errors"
	"fmt"
	"testing"

	"easybazar-backend/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInsertImages_CapKeepsValidationKind(t *testing.T) {
	svc, _ := setupService(t)

	paths := make([]string, 11)
	for i := range paths {
		paths[i] = fmt.Sprintf("%d.jpg", i)
	}

	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		return insertImages(tx, 1, paths)
	})
	require.Error(t, err)

	// the kind survives the transaction wrap, so the guard maps to 400
	wrapped := wrapPersistence(err, "Failed to create listing")
	assert.True(t, apperr.Is(wrapped, apperr.KindValidation))
	assert.Equal(t, "Too many images", wrapped.Error())
}

func TestWrapPersistence_PlainErrorsBecomePersistence(t *testing.T) {
	err := wrapPersistence(errors.New("disk full"), "Failed to create listing")
	assert.True(t, apperr.Is(err, apperr.KindPersistence))
	assert.Equal(t, "Failed to create listing", err.Error())
}
