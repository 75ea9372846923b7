package controllers

import (
	"net/http"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
)

// CategoryController provides the back-office CRUD over categories
type CategoryController interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type categoryController struct {
	categories services.CategoryService
}

// NewCategoryController creates a new instance of CategoryController
func NewCategoryController(categories services.CategoryService) *categoryController {
	return &categoryController{categories: categories}
}

// List godoc
// @Summary List categories
// @Description Get all categories ordered by name
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Category
// @Failure 401 {object} models.APIError
// @Router /api/v1/protected/categories [get]
func (cc *categoryController) List(ctx *gin.Context) {
	categories, err := cc.categories.List(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// Get godoc
// @Summary Get a category
// @Description Get a single category by ID
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} models.APIError
// @Router /api/v1/protected/categories/{id} [get]
func (cc *categoryController) Get(ctx *gin.Context) {
	category, err := cc.categories.Get(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// Create godoc
// @Summary Create a category
// @Description Create a new category; a blank slug is derived from the name
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body services.CategoryInput true "Category data"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/protected/categories [post]
func (cc *categoryController) Create(ctx *gin.Context) {
	var input services.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondError(ctx, models.NewValidationError(err.Error()))
		return
	}

	category, err := cc.categories.Create(ctx, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// Update godoc
// @Summary Update a category
// @Description Update an existing category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param category body services.CategoryInput true "Category data"
// @Success 200 {object} models.Category
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/protected/categories/{id} [put]
func (cc *categoryController) Update(ctx *gin.Context) {
	var input services.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondError(ctx, models.NewValidationError(err.Error()))
		return
	}

	category, err := cc.categories.Update(ctx, ctx.Param("id"), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Description Delete a category; refused while menu items still reference it
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/protected/categories/{id} [delete]
func (cc *categoryController) Delete(ctx *gin.Context) {
	if err := cc.categories.Delete(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
