package auth

import (
	"context"
	"errors"

	internalmodels "github.com/casadocafe/cardapio-api/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	oauthmodels "github.com/go-oauth2/oauth2/v4/models"
	"gorm.io/gorm"
)

type GormClientStore struct {
	db *gorm.DB
}

func NewGormClientStore(db *gorm.DB) *GormClientStore {
	return &GormClientStore{db: db}
}

func (s *GormClientStore) GetByID(ctx context.Context, id string) (oauth2.ClientInfo, error) {
	var client internalmodels.OAuthClient
	if err := s.db.Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}

	// Our OAuthClient implements ClientPasswordVerifier, so the library
	// compares secrets against the stored bcrypt hash.
	return &client, nil
}

type GormTokenStore struct {
	db *gorm.DB
}

func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{db: db}
}

func (s *GormTokenStore) Create(ctx context.Context, info oauth2.TokenInfo) error {
	var userID *string
	if uid := info.GetUserID(); uid != "" {
		userID = &uid
	}
	var refresh *string
	if r := info.GetRefresh(); r != "" {
		refresh = &r
	}

	token := &internalmodels.OAuthToken{
		ClientID:     info.GetClientID(),
		UserID:       userID,
		AccessToken:  info.GetAccess(),
		RefreshToken: refresh,
		Scopes:       info.GetScope(),
		ExpiresAt:    info.GetAccessCreateAt().Add(info.GetAccessExpiresIn()),
	}

	return s.db.Create(token).Error
}

func (s *GormTokenStore) RemoveByCode(ctx context.Context, code string) error {
	// Authorization codes are not issued by this service.
	return nil
}

func (s *GormTokenStore) RemoveByAccess(ctx context.Context, access string) error {
	return s.db.Where("access_token = ?", access).Delete(&internalmodels.OAuthToken{}).Error
}

func (s *GormTokenStore) RemoveByRefresh(ctx context.Context, refresh string) error {
	return s.db.Where("refresh_token = ?", refresh).Delete(&internalmodels.OAuthToken{}).Error
}

func (s *GormTokenStore) GetByCode(ctx context.Context, code string) (oauth2.TokenInfo, error) {
	return nil, errors.New("authorization codes are not supported")
}

func (s *GormTokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	var token internalmodels.OAuthToken
	if err := s.db.Where("access_token = ?", access).First(&token).Error; err != nil {
		return nil, err
	}
	return tokenInfo(&token), nil
}

func (s *GormTokenStore) GetByRefresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	var token internalmodels.OAuthToken
	if err := s.db.Where("refresh_token = ?", refresh).First(&token).Error; err != nil {
		return nil, err
	}
	return tokenInfo(&token), nil
}

func tokenInfo(row *internalmodels.OAuthToken) oauth2.TokenInfo {
	info := oauthmodels.NewToken()
	info.SetClientID(row.ClientID)
	if row.UserID != nil {
		info.SetUserID(*row.UserID)
	}
	info.SetAccess(row.AccessToken)
	if row.RefreshToken != nil {
		info.SetRefresh(*row.RefreshToken)
	}
	info.SetScope(row.Scopes)
	info.SetAccessCreateAt(row.CreatedAt)
	info.SetAccessExpiresIn(row.ExpiresAt.Sub(row.CreatedAt))
	return info
}
