package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Administrator is the back-office profile row. Credentials live in the
// Identity table; the two are created and deleted in lockstep by the admin
// service so a login never exists without a matching administrator row.
type Administrator struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (Administrator) TableName() string {
	return "administrators"
}

func (a *Administrator) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Identity holds the authentication credentials for an administrator.
type Identity struct {
	ID             string `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex;not null"`
	PasswordHash   string `gorm:"not null"`
	EmailConfirmed bool   `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Identity) TableName() string {
	return "identities"
}

func (u *Identity) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
