package auth

import (
	"net/http"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
)

// HandleToken handles the token endpoint for the password and client
// credentials grants
// @Summary Token Endpoint
// @Description Obtain an access token using the password or client_credentials grant
// @Tags OAuth2
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Grant type: password or client_credentials"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string true "Client Secret"
// @Param username formData string false "Administrator email (password grant)"
// @Param password formData string false "Administrator password (password grant)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /oauth/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	grantType := c.PostForm("grant_type")

	switch grantType {
	case "password":
		o.handlePassword(c)
	case "client_credentials":
		o.handleClientCredentials(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnsupportedGrantType})
	}
}

func (o *OAuthService) handlePassword(c *gin.Context) {
	client, ok := o.validateClient(c, "password")
	if !ok {
		return
	}

	email := c.PostForm("username")
	password := c.PostForm("password")

	admin, err := o.admins.Authenticate(c, email, password)
	if err != nil {
		// The code distinguishes wrong credentials from an unconfirmed email.
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             models.CodeOf(err),
			"error_description": err.Error(),
		})
		return
	}

	// The manager re-verifies the secret through ClientPasswordVerifier, so
	// the plain form secret travels with the request.
	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.PasswordCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     client.ID,
		ClientSecret: c.PostForm("client_secret"),
		UserID:       admin.ID,
		Scope:        client.Scopes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": ti.GetAccess(),
		"token_type":   "Bearer",
		"expires_in":   int64(ti.GetAccessExpiresIn().Seconds()),
		"scope":        ti.GetScope(),
		"admin": gin.H{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
		},
	})
}

func (o *OAuthService) handleClientCredentials(c *gin.Context) {
	client, ok := o.validateClient(c, "client_credentials")
	if !ok {
		return
	}

	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     client.ID,
		ClientSecret: c.PostForm("client_secret"),
		Scope:        client.Scopes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": ti.GetAccess(),
		"token_type":   "Bearer",
		"expires_in":   int64(ti.GetAccessExpiresIn().Seconds()),
		"scope":        ti.GetScope(),
	})
}

// validateClient loads the client, verifies its secret against the stored
// bcrypt hash and checks the grant is allowed. Responds and returns false on
// failure.
func (o *OAuthService) validateClient(c *gin.Context, grant string) (*models.OAuthClient, bool) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")

	var client models.OAuthClient
	if err := o.db.Where("id = ?", clientID).First(&client).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidClient})
		return nil, false
	}

	if !client.VerifyPassword(clientSecret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidClient})
		return nil, false
	}

	if !client.AllowsGrant(grant) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized_client"})
		return nil, false
	}

	return &client, true
}
