package services

import (
	"context"
	"testing"
	"time"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategoriesOrdersByName(t *testing.T) {
	db := setupTestDB(t)
	createTestCategory(t, db, "Doces", "doces")
	createTestCategory(t, db, "Cafés", "cafes")

	catalog := NewCatalogService(db)
	categories, origin := catalog.ListCategories(context.Background())

	assert.Equal(t, OriginDatabase, origin)
	require.Len(t, categories, 2)
	assert.Equal(t, "Cafés", categories[0].Name)
	assert.Equal(t, "Doces", categories[1].Name)
}

func TestListCategoriesFallsBackWhenDatabaseFails(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Exec("DROP TABLE categories").Error)

	catalog := NewCatalogService(db)
	categories, origin := catalog.ListCategories(context.Background())

	assert.Equal(t, OriginFallback, origin)
	require.NotEmpty(t, categories)
	assert.Equal(t, "Cafés", categories[0].Name)
	for _, c := range categories {
		assert.Contains(t, c.ID, "local-")
	}
}

func TestListItemsFiltersUnavailableAndByCategory(t *testing.T) {
	db := setupTestDB(t)
	cafes := createTestCategory(t, db, "Cafés", "cafes")
	doces := createTestCategory(t, db, "Doces", "doces")

	createTestItem(t, db, cafes.ID, "Espresso", 8.0)
	createTestItem(t, db, doces.ID, "Cookie", 6.5)
	hidden := models.MenuItem{Name: "Secreto", Price: 1, Available: false, CategoryID: cafes.ID}
	require.NoError(t, db.Create(&hidden).Error)

	catalog := NewCatalogService(db)

	items, origin := catalog.ListItems(context.Background(), nil)
	assert.Equal(t, OriginDatabase, origin)
	require.Len(t, items, 2)
	assert.Equal(t, "Cookie", items[0].Name)
	assert.Equal(t, "Espresso", items[1].Name)

	items, _ = catalog.ListItems(context.Background(), &cafes.ID)
	require.Len(t, items, 1)
	assert.Equal(t, "Espresso", items[0].Name)
}

func TestListItemsFallsBackWhenDatabaseFails(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Exec("DROP TABLE menu_items").Error)

	catalog := NewCatalogService(db)
	items, origin := catalog.ListItems(context.Background(), nil)

	assert.Equal(t, OriginFallback, origin)
	require.Len(t, items, 2)
	assert.Equal(t, "Cookie de chocolate", items[0].Name)
	assert.Equal(t, "Espresso", items[1].Name)
}

func TestListActivePromotions(t *testing.T) {
	db := setupTestDB(t)
	cafes := createTestCategory(t, db, "Cafés", "cafes")

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	promo := 6.0
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	live := models.MenuItem{
		Name: "Espresso", Price: 8, Available: true, CategoryID: cafes.ID,
		PromoPrice: &promo, PromoActive: true, PromoStartsAt: &past, PromoEndsAt: &future,
	}
	require.NoError(t, db.Create(&live).Error)

	configured := models.MenuItem{
		Name: "Latte", Price: 10, Available: true, CategoryID: cafes.ID,
		PromoPrice: &promo, PromoActive: false,
	}
	require.NoError(t, db.Create(&configured).Error)

	createTestItem(t, db, cafes.ID, "Mocha", 12)

	catalog := NewCatalogService(db)
	items, origin := catalog.ListActivePromotions(context.Background(), nil, now)

	assert.Equal(t, OriginDatabase, origin)
	require.Len(t, items, 1)
	assert.Equal(t, "Espresso", items[0].Name)
}

func TestOverviewCounts(t *testing.T) {
	db := setupTestDB(t)
	cafes := createTestCategory(t, db, "Cafés", "cafes")
	createTestCategory(t, db, "Doces", "doces")

	createTestItem(t, db, cafes.ID, "Espresso", 8.0)
	featured := models.MenuItem{Name: "Latte", Price: 10, Available: true, Featured: true, CategoryID: cafes.ID}
	require.NoError(t, db.Create(&featured).Error)
	hidden := models.MenuItem{Name: "Secreto", Price: 1, Available: false, CategoryID: cafes.ID}
	require.NoError(t, db.Create(&hidden).Error)

	catalog := NewCatalogService(db)
	overview, err := catalog.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), overview.Categories)
	assert.Equal(t, int64(3), overview.Items)
	assert.Equal(t, int64(2), overview.Available)
	assert.Equal(t, int64(1), overview.Featured)
}
