package controllers

import (
	"context"
	"io"
	"testing"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Pin the pool so every query hits the same in-memory database
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

// fakeStore keeps controller tests off a live bucket.
type fakeStore struct {
	uploads []string
}

func (f *fakeStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "http://store.test/" + key
}
