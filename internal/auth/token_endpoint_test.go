package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postToken(router *gin.Engine, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/oauth/token", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPasswordGrantFlow(t *testing.T) {
	db := setupTestDB(t)
	admins := services.NewAdminService(db)
	oauthService := NewOAuthService(db, admins, "test-jwt-secret-key-32-characters")

	_, err := admins.Create(context.Background(), "Ana", "ana@example.com", "secret123", "secret123")
	require.NoError(t, err)
	createTestClient(t, db, "backoffice", "office_secret", "password", "admin")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/oauth/token", oauthService.HandleToken)

	w := postToken(router,
		"grant_type=password&client_id=backoffice&client_secret=office_secret&username=ana@example.com&password=secret123")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Contains(t, response, "access_token")
	assert.Equal(t, "Bearer", response["token_type"])
	assert.Contains(t, response["access_token"].(string), ".")

	admin, ok := response["admin"].(map[string]interface{})
	require.True(t, ok, "password grant response must carry the administrator")
	assert.Equal(t, "ana@example.com", admin["email"])
}

func TestPasswordGrantWrongCredentials(t *testing.T) {
	db := setupTestDB(t)
	admins := services.NewAdminService(db)
	oauthService := NewOAuthService(db, admins, "test-jwt-secret-key-32-characters")

	_, err := admins.Create(context.Background(), "Ana", "ana@example.com", "secret123", "secret123")
	require.NoError(t, err)
	createTestClient(t, db, "backoffice", "office_secret", "password", "admin")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/oauth/token", oauthService.HandleToken)

	w := postToken(router,
		"grant_type=password&client_id=backoffice&client_secret=office_secret&username=ana@example.com&password=wrong")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, models.ErrInvalidCredentials, response["error"])
}

func TestPasswordGrantUnconfirmedEmail(t *testing.T) {
	db := setupTestDB(t)
	admins := services.NewAdminService(db)
	oauthService := NewOAuthService(db, admins, "test-jwt-secret-key-32-characters")

	_, err := admins.Create(context.Background(), "Ana", "ana@example.com", "secret123", "secret123")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Identity{}).
		Where("email = ?", "ana@example.com").
		Update("email_confirmed", false).Error)
	createTestClient(t, db, "backoffice", "office_secret", "password", "admin")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/oauth/token", oauthService.HandleToken)

	w := postToken(router,
		"grant_type=password&client_id=backoffice&client_secret=office_secret&username=ana@example.com&password=secret123")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, models.ErrEmailNotConfirmed, response["error"],
		"an unconfirmed email must be distinguishable from wrong credentials")
}

func TestClientCredentialsFlow(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, services.NewAdminService(db), "test-jwt-secret-key-32-characters")
	createTestClient(t, db, "test_client_id", "test_secret", "client_credentials", "service")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/oauth/token", oauthService.HandleToken)

	w := postToken(router, "grant_type=client_credentials&client_id=test_client_id&client_secret=test_secret")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Contains(t, response, "access_token")
	assert.Equal(t, "Bearer", response["token_type"])
	assert.Contains(t, response["access_token"].(string), ".")
	assert.NotContains(t, response, "admin")
}

func TestClientCredentialsInvalidSecret(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, services.NewAdminService(db), "test-jwt-secret-key-32-characters")
	createTestClient(t, db, "test_client_id", "correct_secret", "client_credentials", "service")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/oauth/token", oauthService.HandleToken)

	w := postToken(router, "grant_type=client_credentials&client_id=test_client_id&client_secret=wrong_secret")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGrantNotAllowedForClient(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, services.NewAdminService(db), "test-jwt-secret-key-32-characters")
	// Client only allowed the client_credentials grant
	createTestClient(t, db, "test_client_id", "test_secret", "client_credentials", "service")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/oauth/token", oauthService.HandleToken)

	w := postToken(router,
		"grant_type=password&client_id=test_client_id&client_secret=test_secret&username=a@b.com&password=x")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnsupportedGrantType(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, services.NewAdminService(db), "test-jwt-secret-key-32-characters")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/oauth/token", oauthService.HandleToken)

	w := postToken(router, "grant_type=authorization_code&client_id=x&client_secret=y")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, models.ErrUnsupportedGrantType, response["error"])
}
