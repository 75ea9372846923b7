package pricing

import (
	"fmt"
	"time"

	"github.com/casadocafe/cardapio-api/internal/models"
)

// PromotionStatus is the three-way display state of an item's promotion.
type PromotionStatus string

const (
	// PromotionNone: no promotional price configured at all.
	PromotionNone PromotionStatus = "none"
	// PromotionConfigured: a promotional price exists but is not currently
	// shown (inactive, or outside its time window).
	PromotionConfigured PromotionStatus = "configured"
	// PromotionLive: the promotional price is in effect right now.
	PromotionLive PromotionStatus = "live"
)

// PromotionVisible reports whether the item's promotional price is in effect
// at the given instant. Both window bounds are inclusive; an absent bound is
// unbounded.
func PromotionVisible(item *models.MenuItem, now time.Time) bool {
	if !item.PromoActive || item.PromoPrice == nil {
		return false
	}
	if item.PromoStartsAt != nil && now.Before(*item.PromoStartsAt) {
		return false
	}
	if item.PromoEndsAt != nil && now.After(*item.PromoEndsAt) {
		return false
	}
	return true
}

// EffectivePrice returns the promotional price when the promotion is visible,
// otherwise the regular price.
func EffectivePrice(item *models.MenuItem, now time.Time) float64 {
	if PromotionVisible(item, now) {
		return *item.PromoPrice
	}
	return item.Price
}

// StatusOf classifies the item's promotion for listings.
func StatusOf(item *models.MenuItem, now time.Time) PromotionStatus {
	if PromotionVisible(item, now) {
		return PromotionLive
	}
	if item.PromoPrice != nil {
		return PromotionConfigured
	}
	return PromotionNone
}

// ValidatePromotion rejects a promotion update before it reaches storage.
// The promotional price must be positive and strictly less than the regular
// price; callers re-prompt instead of clamping.
func ValidatePromotion(price, promoPrice float64) error {
	if promoPrice <= 0 {
		return models.NewValidationError("promotional price must be greater than zero")
	}
	if promoPrice >= price {
		return models.NewValidationError(fmt.Sprintf(
			"promotional price (%s) must be less than the regular price (%s)",
			FormatAmount(promoPrice), FormatAmount(price)))
	}
	return nil
}
