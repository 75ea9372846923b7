package controllers

import (
	"net/http"
	"time"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/pricing"
	"github.com/casadocafe/cardapio-api/internal/services"
	"github.com/casadocafe/cardapio-api/internal/storage"
	"github.com/gin-gonic/gin"
)

// MenuController serves the public, read-only menu
type MenuController interface {
	// GetCategories lists the menu categories
	GetCategories(c *gin.Context)
	// GetItems lists available items, optionally filtered by category
	GetItems(c *gin.Context)
	// GetPromotions lists items whose promotion is currently live
	GetPromotions(c *gin.Context)
	// PricePreview normalizes typed price input for the editing forms
	PricePreview(c *gin.Context)
}

type menuController struct {
	catalog services.CatalogService
	store   storage.ObjectStore
	now     func() time.Time
}

// NewMenuController creates a new instance of MenuController
func NewMenuController(catalog services.CatalogService, store storage.ObjectStore) *menuController {
	return &menuController{catalog: catalog, store: store, now: time.Now}
}

// menuItemView is the display-ready projection of a menu item.
type menuItemView struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Description         *string `json:"description,omitempty"`
	ImageURL            string  `json:"image_url,omitempty"`
	CategoryID          string  `json:"category_id"`
	Featured            bool    `json:"featured"`
	Price               float64 `json:"price"`
	PriceLabel          string  `json:"price_label"`
	EffectivePrice      float64 `json:"effective_price"`
	EffectivePriceLabel string  `json:"effective_price_label"`
	PromotionStatus     string  `json:"promotion_status"`
}

func (mc *menuController) itemView(item *models.MenuItem, now time.Time) menuItemView {
	view := menuItemView{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		CategoryID:      item.CategoryID,
		Featured:        item.Featured,
		Price:           item.Price,
		PriceLabel:      pricing.FormatAmount(item.Price),
		EffectivePrice:  pricing.EffectivePrice(item, now),
		PromotionStatus: string(pricing.StatusOf(item, now)),
	}
	view.EffectivePriceLabel = pricing.FormatAmount(view.EffectivePrice)
	if item.ImagePath != nil {
		view.ImageURL = mc.store.PublicURL(*item.ImagePath)
	}
	return view
}

// GetCategories godoc
// @Summary List menu categories
// @Description Get all categories ordered by name, with the data origin (database or local fallback)
// @Tags menu
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/public/categories [get]
func (mc *menuController) GetCategories(ctx *gin.Context) {
	categories, origin := mc.catalog.ListCategories(ctx)
	ctx.JSON(http.StatusOK, gin.H{
		"origin":     origin,
		"categories": categories,
	})
}

// GetItems godoc
// @Summary List available menu items
// @Description Get available items ordered by name, optionally filtered by category
// @Tags menu
// @Produce json
// @Param category_id query string false "Filter by category ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/public/items [get]
func (mc *menuController) GetItems(ctx *gin.Context) {
	items, origin := mc.catalog.ListItems(ctx, categoryFilter(ctx))
	ctx.JSON(http.StatusOK, gin.H{
		"origin": origin,
		"items":  mc.itemViews(items),
	})
}

// GetPromotions godoc
// @Summary List items in live promotion
// @Description Get available items whose promotional price is in effect right now
// @Tags menu
// @Produce json
// @Param category_id query string false "Filter by category ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/public/promotions [get]
func (mc *menuController) GetPromotions(ctx *gin.Context) {
	items, origin := mc.catalog.ListActivePromotions(ctx, categoryFilter(ctx), mc.now())
	ctx.JSON(http.StatusOK, gin.H{
		"origin": origin,
		"items":  mc.itemViews(items),
	})
}

// PricePreview godoc
// @Summary Normalize typed price input
// @Description Parse masked price input (digits as cents) and return the canonical amount and its pt-BR label; an optional ceiling clamps the value one cent below it
// @Tags menu
// @Produce json
// @Param raw query string true "Raw typed input"
// @Param ceiling query number false "Clamp ceiling (the item's regular price)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/public/price-preview [get]
func (mc *menuController) PricePreview(ctx *gin.Context) {
	amount := pricing.ParseAmount(ctx.Query("raw"))

	if ceiling := pricing.ParseAmount(ctx.Query("ceiling")); ceiling > 0 {
		amount = pricing.ClampBelow(amount, ceiling)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"amount":    amount,
		"formatted": pricing.FormatAmount(amount),
	})
}

func (mc *menuController) itemViews(items []models.MenuItem) []menuItemView {
	now := mc.now()
	views := make([]menuItemView, 0, len(items))
	for i := range items {
		views = append(views, mc.itemView(&items[i], now))
	}
	return views
}

func categoryFilter(ctx *gin.Context) *string {
	if id := ctx.Query("category_id"); id != "" {
		return &id
	}
	return nil
}
