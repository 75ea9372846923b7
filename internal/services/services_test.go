package services

import (
	"context"
	"io"
	"testing"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A pooled in-memory sqlite hands every connection its own database;
	// pin the pool to one connection so all queries see the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	err = db.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.Administrator{},
		&models.Identity{},
	)
	require.NoError(t, err)

	return db
}

// fakeStore records object store calls so service tests can assert on upload
// and delete behavior without a live bucket.
type fakeStore struct {
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

var _ storage.ObjectStore = (*fakeStore)(nil)

func (f *fakeStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "http://store.test/" + key
}

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string) models.Category {
	category := models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createTestItem(t *testing.T, db *gorm.DB, categoryID, name string, price float64) models.MenuItem {
	item := models.MenuItem{
		Name:       name,
		Price:      price,
		Available:  true,
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}
