package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem is a single entry of the menu. Promotion columns are flattened
// into the item row; PromoPrice present with PromoActive false means the
// promotion is configured but not shown on the public menu.
type MenuItem struct {
	ID          string   `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null" json:"name"`
	Description *string  `json:"description,omitempty"`
	ImagePath   *string  `json:"image_path,omitempty"`
	Price       float64  `gorm:"not null" json:"price"`
	Available   bool     `gorm:"default:true" json:"available"`
	Featured    bool     `gorm:"default:false" json:"featured"`
	CategoryID  string   `gorm:"not null" json:"category_id"`
	Category    *Category `gorm:"constraint:OnDelete:RESTRICT" json:"category,omitempty"`

	PromoPrice    *float64   `json:"promo_price,omitempty"`
	PromoActive   bool       `gorm:"default:false" json:"promo_active"`
	PromoStartsAt *time.Time `json:"promo_starts_at,omitempty"`
	PromoEndsAt   *time.Time `json:"promo_ends_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

func (i *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
