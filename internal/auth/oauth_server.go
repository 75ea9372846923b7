package auth

import (
	"github.com/casadocafe/cardapio-api/internal/services"
	"github.com/go-oauth2/oauth2/v4/manage"
	"github.com/go-oauth2/oauth2/v4/server"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// OAuthService issues JWT access tokens at the token endpoint. Two grants are
// supported: password (administrators logging into the back office) and
// client_credentials (first-party service clients).
type OAuthService struct {
	server *server.Server
	db     *gorm.DB
	admins services.AdminService
}

func NewOAuthService(db *gorm.DB, admins services.AdminService, jwtSecret string) *OAuthService {
	manager := manage.NewDefaultManager()

	// Use JWT for access tokens, with administrator claims baked in
	manager.MapAccessGenerate(NewAdminJWTAccessGenerate([]byte(jwtSecret), jwt.SigningMethodHS512, db))

	// Configure token store
	tokenStore := NewGormTokenStore(db)
	manager.MustTokenStorage(tokenStore, nil)

	// Configure client store
	clientStore := NewGormClientStore(db)
	manager.MapClientStorage(clientStore)

	srv := server.NewDefaultServer(manager)
	srv.SetClientInfoHandler(server.ClientFormHandler)

	return &OAuthService{
		server: srv,
		db:     db,
		admins: admins,
	}
}

func (o *OAuthService) GetServer() *server.Server {
	return o.server
}
