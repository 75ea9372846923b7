package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OAuthClient is a first-party API client allowed at the token endpoint.
// Secrets are stored as bcrypt hashes.
type OAuthClient struct {
	ID         string `gorm:"primaryKey"`
	Secret     string `gorm:"not null"`
	Name       string
	Domain     string
	Role       string `gorm:"default:'service'"` // role embedded in client-credentials tokens
	Scopes     string // Space-separated list of allowed scopes
	GrantTypes string // Space-separated list: "password client_credentials"
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

// oauth2.ClientInfo implementation

func (c *OAuthClient) GetID() string     { return c.ID }
func (c *OAuthClient) GetSecret() string { return c.Secret }
func (c *OAuthClient) GetDomain() string { return c.Domain }
func (c *OAuthClient) IsPublic() bool    { return false }
func (c *OAuthClient) GetUserID() string { return "" }

// VerifyPassword implements ClientPasswordVerifier so the oauth2 server
// compares form secrets against the stored bcrypt hash instead of plain text.
func (c *OAuthClient) VerifyPassword(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(secret)) == nil
}

// AllowsGrant reports whether the client may use the given grant type.
func (c *OAuthClient) AllowsGrant(grant string) bool {
	for _, g := range strings.Fields(c.GrantTypes) {
		if g == grant {
			return true
		}
	}
	return false
}
