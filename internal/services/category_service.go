package services

import (
	"context"
	"errors"
	"strings"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/slugify"
	"gorm.io/gorm"
)

// CategoryInput carries the editable fields of a category. A blank slug is
// derived from the name; a provided slug is normalized through the same
// derivation so both paths produce identical identifiers.
type CategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// CategoryService provides the back-office operations on categories
type CategoryService interface {
	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]models.Category, error)
	// Get retrieves a category by its ID
	Get(ctx context.Context, id string) (models.Category, error)
	// Create validates and persists a new category
	Create(ctx context.Context, input CategoryInput) (models.Category, error)
	// Update validates and persists changes to an existing category
	Update(ctx context.Context, id string, input CategoryInput) (models.Category, error)
	// Delete removes a category; blocked while items still reference it
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryService{db: db}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, models.NewBackendError("failed to list categories", err)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, models.NewNotFoundError("category not found")
		}
		return models.Category{}, models.NewBackendError("failed to load category", err)
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (models.Category, error) {
	category, err := buildCategory(input)
	if err != nil {
		return models.Category{}, err
	}

	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, models.NewConflictError("a category with this slug already exists")
		}
		return models.Category{}, models.NewBackendError("failed to create category", err)
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id string, input CategoryInput) (models.Category, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.Category{}, err
	}

	updated, err := buildCategory(input)
	if err != nil {
		return models.Category{}, err
	}

	existing.Name = updated.Name
	existing.Slug = updated.Slug
	existing.Description = updated.Description

	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, models.NewConflictError("a category with this slug already exists")
		}
		return models.Category{}, models.NewBackendError("failed to update category", err)
	}
	return existing, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if err := result.Error; err != nil {
		if isForeignKeyViolation(err) {
			return models.NewReferentialConflictError("category still referenced by items")
		}
		return models.NewBackendError("failed to delete category", err)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("category not found")
	}
	return nil
}

func buildCategory(input CategoryInput) (models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Category{}, models.NewValidationError("category name is required")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = name
	}
	slug = slugify.Derive(slug)
	if slug == "" {
		return models.Category{}, models.NewValidationError("category slug is required")
	}

	var description *string
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			description = &d
		}
	}

	return models.Category{Name: name, Slug: slug, Description: description}, nil
}

// isForeignKeyViolation matches referential errors across drivers; the string
// check covers sqlite builds where gorm's error translation misses the code.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToUpper(err.Error()), "FOREIGN KEY")
}
