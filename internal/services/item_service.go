package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/pricing"
	"github.com/casadocafe/cardapio-api/internal/storage"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ItemInput carries the editable fields of a menu item.
type ItemInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	Featured    bool    `json:"featured"`
	CategoryID  string  `json:"category_id"`
}

// ImageUpload is an optional image accompanying a create or update.
type ImageUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// PromotionInput carries the promotion fields saved against an item.
type PromotionInput struct {
	PromoPrice float64    `json:"promo_price"`
	Active     bool       `json:"active"`
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
}

// ItemService provides the back-office operations on menu items
type ItemService interface {
	// List retrieves all items with their category, ordered by name
	List(ctx context.Context) ([]models.MenuItem, error)
	// Get retrieves an item by its ID
	Get(ctx context.Context, id string) (models.MenuItem, error)
	// Create persists a new item, uploading the image first when present
	Create(ctx context.Context, input ItemInput, image *ImageUpload) (models.MenuItem, error)
	// Update persists changes to an existing item, uploading a replacement
	// image first when present
	Update(ctx context.Context, id string, input ItemInput, image *ImageUpload) (models.MenuItem, error)
	// Delete removes the record, then best-effort removes its stored image
	Delete(ctx context.Context, id string) error
	// SavePromotion validates and persists the promotion fields
	SavePromotion(ctx context.Context, itemID string, input PromotionInput) (models.MenuItem, error)
	// RemovePromotion clears all promotion fields
	RemovePromotion(ctx context.Context, itemID string) (models.MenuItem, error)
}

type itemService struct {
	db    *gorm.DB
	store storage.ObjectStore
	now   func() time.Time
}

// NewItemService creates a new instance of ItemService
func NewItemService(db *gorm.DB, store storage.ObjectStore) ItemService {
	return &itemService{db: db, store: store, now: time.Now}
}

func (s *itemService) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Preload("Category").Order("name asc").Find(&items).Error; err != nil {
		return nil, models.NewBackendError("failed to list items", err)
	}
	return items, nil
}

func (s *itemService) Get(ctx context.Context, id string) (models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MenuItem{}, models.NewNotFoundError("item not found")
		}
		return models.MenuItem{}, models.NewBackendError("failed to load item", err)
	}
	return item, nil
}

func (s *itemService) Create(ctx context.Context, input ItemInput, image *ImageUpload) (models.MenuItem, error) {
	if err := validateItemInput(input); err != nil {
		return models.MenuItem{}, err
	}

	imagePath, err := s.uploadImage(ctx, input.CategoryID, image)
	if err != nil {
		return models.MenuItem{}, err
	}

	item := models.MenuItem{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Available:   input.Available,
		Featured:    input.Featured,
		CategoryID:  input.CategoryID,
		ImagePath:   imagePath,
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		s.logOrphanedImage(imagePath, err)
		return models.MenuItem{}, models.NewBackendError("failed to create item", err)
	}
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id string, input ItemInput, image *ImageUpload) (models.MenuItem, error) {
	if err := validateItemInput(input); err != nil {
		return models.MenuItem{}, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return models.MenuItem{}, err
	}

	imagePath, err := s.uploadImage(ctx, input.CategoryID, image)
	if err != nil {
		return models.MenuItem{}, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Description = input.Description
	item.Price = input.Price
	item.Available = input.Available
	item.Featured = input.Featured
	item.CategoryID = input.CategoryID
	if imagePath != nil {
		item.ImagePath = imagePath
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		// The uploaded object is not rolled back; the key is logged so it
		// can be garbage-collected.
		s.logOrphanedImage(imagePath, err)
		return models.MenuItem{}, models.NewBackendError("failed to update item", err)
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id).Error; err != nil {
		return models.NewBackendError("failed to delete item", err)
	}

	// Image removal is best-effort: a stale object must not fail the delete.
	if item.ImagePath != nil {
		if err := s.store.Delete(ctx, *item.ImagePath); err != nil {
			log.WithError(err).WithField("key", *item.ImagePath).
				Warn("Failed to delete stored image for removed item")
		}
	}
	return nil
}

func (s *itemService) SavePromotion(ctx context.Context, itemID string, input PromotionInput) (models.MenuItem, error) {
	item, err := s.Get(ctx, itemID)
	if err != nil {
		return models.MenuItem{}, err
	}

	if err := pricing.ValidatePromotion(item.Price, input.PromoPrice); err != nil {
		return models.MenuItem{}, err
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return models.MenuItem{}, models.NewValidationError("promotion end must not precede its start")
	}

	item.PromoPrice = &input.PromoPrice
	item.PromoActive = input.Active
	item.PromoStartsAt = input.StartsAt
	item.PromoEndsAt = input.EndsAt

	if err := s.savePromotionFields(ctx, &item); err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

func (s *itemService) RemovePromotion(ctx context.Context, itemID string) (models.MenuItem, error) {
	item, err := s.Get(ctx, itemID)
	if err != nil {
		return models.MenuItem{}, err
	}

	item.PromoPrice = nil
	item.PromoActive = false
	item.PromoStartsAt = nil
	item.PromoEndsAt = nil

	if err := s.savePromotionFields(ctx, &item); err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

// savePromotionFields writes only the promotion columns so cleared fields
// actually reach NULL.
func (s *itemService) savePromotionFields(ctx context.Context, item *models.MenuItem) error {
	err := s.db.WithContext(ctx).Model(item).
		Select("promo_price", "promo_active", "promo_starts_at", "promo_ends_at").
		Updates(map[string]interface{}{
			"promo_price":     item.PromoPrice,
			"promo_active":    item.PromoActive,
			"promo_starts_at": item.PromoStartsAt,
			"promo_ends_at":   item.PromoEndsAt,
		}).Error
	if err != nil {
		return models.NewBackendError("failed to save promotion", err)
	}
	return nil
}

// uploadImage stores the image under the category's slug folder and returns
// the new key, or nil when no image was supplied. The upload happens before
// the record write; on upload failure nothing is persisted.
func (s *itemService) uploadImage(ctx context.Context, categoryID string, image *ImageUpload) (*string, error) {
	if image == nil {
		return nil, nil
	}

	folder := ""
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err == nil {
		folder = category.Slug
	}

	key := storage.ImageKey(folder, image.FileName, s.now())
	if err := s.store.Upload(ctx, key, image.Body, image.ContentType); err != nil {
		return nil, models.NewBackendError("failed to upload image", err)
	}
	return &key, nil
}

func (s *itemService) logOrphanedImage(key *string, cause error) {
	if key == nil {
		return
	}
	log.WithError(cause).WithField("key", *key).
		Warn("Item write failed after image upload; stored object is orphaned")
}

func validateItemInput(input ItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return models.NewValidationError("item name is required")
	}
	if input.Price < 0 {
		return models.NewValidationError("item price must not be negative")
	}
	if input.CategoryID == "" {
		return models.NewValidationError("item category is required")
	}
	return nil
}
