package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest-backend/internal/apperrors"
	"github.com/tasknest/tasknest-backend/internal/models"
)

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)

	require.NoError(t, svc.SeedDefaults())
	require.NoError(t, svc.SeedDefaults())

	categories, err := svc.List()
	require.NoError(t, err)
	require.Len(t, categories, len(models.DefaultCategories))

	names := make(map[string]bool, len(categories))
	for _, c := range categories {
		names[c.Name] = true
	}
	for _, want := range models.DefaultCategories {
		assert.True(t, names[want], "missing default category %q", want)
	}
}

func TestSeedDefaultsKeepsExistingRows(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)

	existing := models.Category{ID: uuid.New(), Name: "Development"}
	require.NoError(t, db.Create(&existing).Error)

	require.NoError(t, svc.SeedDefaults())

	got, err := svc.Get(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Development", got.Name)

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.EqualValues(t, len(models.DefaultCategories), count)
}

func TestGetUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)

	_, err := svc.Get(uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
