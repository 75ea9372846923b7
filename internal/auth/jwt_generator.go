package auth

import (
	"context"
	"fmt"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AdminJWTAccessGenerate generates JWT access tokens carrying the
// administrator's identity (uid, email, role) so the middleware can enforce
// the self-delete guard without a database lookup.
type AdminJWTAccessGenerate struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	DB           *gorm.DB
}

// NewAdminJWTAccessGenerate creates a new custom JWT access token generator
func NewAdminJWTAccessGenerate(key []byte, method jwt.SigningMethod, db *gorm.DB) *AdminJWTAccessGenerate {
	return &AdminJWTAccessGenerate{
		SignedKey:    key,
		SignedMethod: method,
		DB:           db,
	}
}

// Token generates a JWT access token with custom claims. Called by the OAuth2
// library for every issued access token.
func (g *AdminJWTAccessGenerate) Token(ctx context.Context, data *oauth2.GenerateBasic, isGenRefresh bool) (string, string, error) {
	claims := jwt.MapClaims{
		"aud": data.Client.GetID(),
		"iat": data.TokenInfo.GetAccessCreateAt().Unix(),
		"exp": data.TokenInfo.GetAccessCreateAt().Add(data.TokenInfo.GetAccessExpiresIn()).Unix(),
	}

	if data.UserID != "" {
		// Password grant: the user is an administrator.
		var admin models.Administrator
		if err := g.DB.First(&admin, "id = ?", data.UserID).Error; err != nil {
			return "", "", fmt.Errorf("failed to load administrator for token: %w", err)
		}
		claims["uid"] = admin.ID
		claims["email"] = admin.Email
		claims["role"] = "admin"
	} else {
		// Client credentials: the subject is the client itself, with the
		// role stored on the client row.
		var client models.OAuthClient
		if err := g.DB.First(&client, "id = ?", data.Client.GetID()).Error; err != nil {
			return "", "", fmt.Errorf("failed to load client for token: %w", err)
		}
		role := client.Role
		if role == "" {
			role = "service"
		}
		claims["uid"] = client.ID
		claims["role"] = role
	}

	if data.TokenInfo.GetScope() != "" {
		claims["scope"] = data.TokenInfo.GetScope()
	}

	token := jwt.NewWithClaims(g.SignedMethod, claims)
	access, err := token.SignedString(g.SignedKey)
	if err != nil {
		return "", "", err
	}

	refresh := ""
	if isGenRefresh {
		refreshClaims := jwt.MapClaims{
			"id":  data.TokenInfo.GetAccess(),
			"exp": data.TokenInfo.GetRefreshCreateAt().Add(data.TokenInfo.GetRefreshExpiresIn()).Unix(),
		}
		t := jwt.NewWithClaims(g.SignedMethod, refreshClaims)
		refresh, err = t.SignedString(g.SignedKey)
		if err != nil {
			return "", "", err
		}
	}

	return access, refresh, nil
}
