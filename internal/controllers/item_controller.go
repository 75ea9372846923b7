package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/pricing"
	"github.com/casadocafe/cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ItemController provides the back-office CRUD over menu items, including
// image upload and promotion management
type ItemController interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SavePromotion(c *gin.Context)
	RemovePromotion(c *gin.Context)
}

type itemController struct {
	items services.ItemService
}

// NewItemController creates a new instance of ItemController
func NewItemController(items services.ItemService) *itemController {
	return &itemController{items: items}
}

// List godoc
// @Summary List menu items
// @Description Get all items with their category, ordered by name
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.MenuItem
// @Failure 401 {object} models.APIError
// @Router /api/v1/protected/items [get]
func (ic *itemController) List(ctx *gin.Context) {
	items, err := ic.items.List(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get a menu item
// @Description Get a single item by ID
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} models.MenuItem
// @Failure 404 {object} models.APIError
// @Router /api/v1/protected/items/{id} [get]
func (ic *itemController) Get(ctx *gin.Context) {
	item, err := ic.items.Get(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create a menu item
// @Description Create a new item from a multipart form; the price field accepts masked pt-BR input (digits are read as cents). An optional image part is uploaded before the record is written.
// @Tags items
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Item name"
// @Param description formData string false "Item description"
// @Param price formData string true "Price, masked or plain"
// @Param available formData boolean false "Visible on the public menu"
// @Param featured formData boolean false "Highlighted on the public menu"
// @Param category_id formData string true "Category ID"
// @Param image formData file false "Item image"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} models.APIError
// @Router /api/v1/protected/items [post]
func (ic *itemController) Create(ctx *gin.Context) {
	input := itemInputFromForm(ctx)
	image, cleanup, err := imageFromForm(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer cleanup()

	item, err := ic.items.Create(ctx, input, image)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Update a menu item
// @Description Update an existing item from a multipart form; an image part, when present, replaces the stored one
// @Tags items
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param name formData string true "Item name"
// @Param description formData string false "Item description"
// @Param price formData string true "Price, masked or plain"
// @Param available formData boolean false "Visible on the public menu"
// @Param featured formData boolean false "Highlighted on the public menu"
// @Param category_id formData string true "Category ID"
// @Param image formData file false "Item image"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/protected/items/{id} [put]
func (ic *itemController) Update(ctx *gin.Context) {
	input := itemInputFromForm(ctx)
	image, cleanup, err := imageFromForm(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer cleanup()

	item, err := ic.items.Update(ctx, ctx.Param("id"), input, image)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a menu item
// @Description Delete an item; its stored image is removed best-effort afterwards
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /api/v1/protected/items/{id} [delete]
func (ic *itemController) Delete(ctx *gin.Context) {
	if err := ic.items.Delete(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SavePromotion godoc
// @Summary Save an item promotion
// @Description Set the promotional price, active flag and optional window; the promotional price must stay below the regular price
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param promotion body services.PromotionInput true "Promotion data"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/protected/items/{id}/promotion [put]
func (ic *itemController) SavePromotion(ctx *gin.Context) {
	var input services.PromotionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondError(ctx, models.NewValidationError(err.Error()))
		return
	}

	item, err := ic.items.SavePromotion(ctx, ctx.Param("id"), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// RemovePromotion godoc
// @Summary Remove an item promotion
// @Description Clear all promotion fields of an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} models.MenuItem
// @Failure 404 {object} models.APIError
// @Router /api/v1/protected/items/{id}/promotion [delete]
func (ic *itemController) RemovePromotion(ctx *gin.Context) {
	item, err := ic.items.RemovePromotion(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// itemInputFromForm reads the multipart fields. The price comes through the
// masked editor, so its digits are read as cents; "12,50", "12.50" and "1250"
// all produce 12.50.
func itemInputFromForm(ctx *gin.Context) services.ItemInput {
	input := services.ItemInput{
		Name:       ctx.PostForm("name"),
		Price:      pricing.ParseAmount(ctx.PostForm("price")),
		Available:  formBool(ctx.PostForm("available")),
		Featured:   formBool(ctx.PostForm("featured")),
		CategoryID: ctx.PostForm("category_id"),
	}
	if d := strings.TrimSpace(ctx.PostForm("description")); d != "" {
		input.Description = &d
	}
	return input
}

func imageFromForm(ctx *gin.Context) (*services.ImageUpload, func(), error) {
	header, err := ctx.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, func() {}, nil
		}
		return nil, func() {}, models.NewValidationError("invalid image upload")
	}

	file, err := header.Open()
	if err != nil {
		return nil, func() {}, models.NewValidationError("invalid image upload")
	}

	return &services.ImageUpload{
		FileName:    header.Filename,
		ContentType: formContentType(header),
		Body:        file,
	}, func() { file.Close() }, nil
}

func formContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func formBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}
