package services

import (
	"context"
	"testing"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryDerivesSlug(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryService(db)

	category, err := categories.Create(context.Background(), CategoryInput{Name: "Cafés Especiais"})

	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Cafés Especiais", category.Name)
	assert.Equal(t, "cafes-especiais", category.Slug)
}

func TestCreateCategoryNormalizesProvidedSlug(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryService(db)

	category, err := categories.Create(context.Background(), CategoryInput{
		Name: "Doces",
		Slug: "Doces Finos!",
	})

	require.NoError(t, err)
	assert.Equal(t, "doces-finos", category.Slug)
}

func TestCreateCategoryValidation(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryService(db)

	_, err := categories.Create(context.Background(), CategoryInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, models.ErrValidationFailed, models.CodeOf(err))

	// Nothing reached storage
	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryService(db)

	_, err := categories.Create(context.Background(), CategoryInput{Name: "Cafés"})
	require.NoError(t, err)

	_, err = categories.Create(context.Background(), CategoryInput{Name: "cafes"})
	require.Error(t, err)
	assert.Equal(t, models.ErrConflict, models.CodeOf(err))
}

func TestUpdateCategory(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryService(db)
	existing := createTestCategory(t, db, "Cafés", "cafes")

	updated, err := categories.Update(context.Background(), existing.ID, CategoryInput{Name: "Cafés Gelados"})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "Cafés Gelados", updated.Name)
	assert.Equal(t, "cafes-gelados", updated.Slug)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryService(db)

	_, err := categories.Update(context.Background(), "missing-id", CategoryInput{Name: "Cafés"})
	require.Error(t, err)
	assert.Equal(t, models.ErrNotFound, models.CodeOf(err))
}

func TestDeleteCategory(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryService(db)
	existing := createTestCategory(t, db, "Cafés", "cafes")

	require.NoError(t, categories.Delete(context.Background(), existing.ID))

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteCategoryBlockedByItems(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryService(db)
	existing := createTestCategory(t, db, "Cafés", "cafes")
	createTestItem(t, db, existing.ID, "Espresso", 8.0)

	err := categories.Delete(context.Background(), existing.ID)

	require.Error(t, err)
	assert.Equal(t, models.ErrReferentialConflict, models.CodeOf(err))

	// The category survives the refused delete
	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryService(db)

	err := categories.Delete(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Equal(t, models.ErrNotFound, models.CodeOf(err))
}
