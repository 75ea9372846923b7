package services

import (
	"context"
	"time"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/pricing"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Origin tells the display layer which data source served a catalog read.
type Origin string

const (
	OriginDatabase Origin = "database"
	OriginFallback Origin = "fallback"
)

// CatalogService is the public, read-only view of the menu. Reads never fail:
// when the database is unreachable they serve the built-in dataset and report
// it through the returned Origin.
type CatalogService interface {
	// ListCategories returns all categories ordered by name ascending.
	ListCategories(ctx context.Context) ([]models.Category, Origin)
	// ListItems returns available items ordered by name ascending, optionally
	// filtered by category. In fallback mode the category filter is ignored
	// (the local dataset has no stored category ids) and the full set is
	// returned; degraded on purpose rather than empty.
	ListItems(ctx context.Context, categoryID *string) ([]models.MenuItem, Origin)
	// ListActivePromotions returns the subset of ListItems whose promotion is
	// visible at the given instant.
	ListActivePromotions(ctx context.Context, categoryID *string, now time.Time) ([]models.MenuItem, Origin)
	// Overview returns the dashboard counters.
	Overview(ctx context.Context) (Overview, error)
}

// Overview carries the back-office dashboard counters.
type Overview struct {
	Categories int64 `json:"categories"`
	Items      int64 `json:"items"`
	Available  int64 `json:"available"`
	Featured   int64 `json:"featured"`
}

type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, Origin) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	if err != nil {
		log.WithError(err).Warn("Category query failed, serving local fallback data")
		return fallbackCategories(), OriginFallback
	}
	return categories, OriginDatabase
}

func (s *catalogService) ListItems(ctx context.Context, categoryID *string) ([]models.MenuItem, Origin) {
	query := s.db.WithContext(ctx).Where("available = ?", true).Order("name asc")
	if categoryID != nil && *categoryID != "" {
		query = query.Where("category_id = ?", *categoryID)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		log.WithError(err).Warn("Item query failed, serving local fallback data")
		return fallbackItems(), OriginFallback
	}
	return items, OriginDatabase
}

func (s *catalogService) ListActivePromotions(ctx context.Context, categoryID *string, now time.Time) ([]models.MenuItem, Origin) {
	items, origin := s.ListItems(ctx, categoryID)

	promos := make([]models.MenuItem, 0, len(items))
	for i := range items {
		if pricing.PromotionVisible(&items[i], now) {
			promos = append(promos, items[i])
		}
	}
	return promos, origin
}

func (s *catalogService) Overview(ctx context.Context) (Overview, error) {
	var o Overview
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Category{}).Count(&o.Categories).Error; err != nil {
		return Overview{}, models.NewBackendError("failed to count categories", err)
	}
	if err := db.Model(&models.MenuItem{}).Count(&o.Items).Error; err != nil {
		return Overview{}, models.NewBackendError("failed to count items", err)
	}
	if err := db.Model(&models.MenuItem{}).Where("available = ?", true).Count(&o.Available).Error; err != nil {
		return Overview{}, models.NewBackendError("failed to count available items", err)
	}
	if err := db.Model(&models.MenuItem{}).Where("featured = ?", true).Count(&o.Featured).Error; err != nil {
		return Overview{}, models.NewBackendError("failed to count featured items", err)
	}
	return o, nil
}
