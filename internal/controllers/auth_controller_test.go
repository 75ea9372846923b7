package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casadocafe/cardapio-api/internal/middleware"
	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret-key-32-characters"

func setupAuthRouter(t *testing.T, db *gorm.DB) (*gin.Engine, services.AdminService) {
	admins := services.NewAdminService(db)
	ac := NewAuthController(admins, testJWTSecret)

	router := gin.New()
	authApi := router.Group("/api/v1/auth")
	authApi.POST("/login", ac.Login)
	authApi.GET("/bootstrap", ac.BootstrapStatus)
	authApi.POST("/bootstrap", ac.Bootstrap)

	protected := router.Group("/api/v1/protected")
	protected.Use(middleware.JWTAuth([]byte(testJWTSecret)))
	protected.Use(middleware.RequireRole("admin"))
	protected.GET("/me", ac.Me)

	return router, admins
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) (int, map[string]interface{}) {
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestLoginEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router, admins := setupAuthRouter(t, db)

	_, err := admins.Create(context.Background(), "Ana", "ana@example.com", "secret123", "secret123")
	require.NoError(t, err)

	code, body := postJSON(t, router, "/api/v1/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "Bearer", body["token_type"])

	admin := body["admin"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", admin["email"])
	assert.NotNil(t, admin["last_login_at"], "login must stamp the last login time")
}

func TestLoginEndpointWrongCredentials(t *testing.T) {
	db := setupTestDB(t)
	router, admins := setupAuthRouter(t, db)

	_, err := admins.Create(context.Background(), "Ana", "ana@example.com", "secret123", "secret123")
	require.NoError(t, err)

	code, body := postJSON(t, router, "/api/v1/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, models.ErrInvalidCredentials, body["code"])
}

func TestLoginEndpointUnconfirmedEmail(t *testing.T) {
	db := setupTestDB(t)
	router, admins := setupAuthRouter(t, db)

	_, err := admins.Create(context.Background(), "Ana", "ana@example.com", "secret123", "secret123")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Identity{}).
		Where("email = ?", "ana@example.com").
		Update("email_confirmed", false).Error)

	code, body := postJSON(t, router, "/api/v1/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, models.ErrEmailNotConfirmed, body["code"])
}

func TestBootstrapFlow(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupAuthRouter(t, db)

	// Empty database: not bootstrapped yet
	req := httptest.NewRequest("GET", "/api/v1/auth/bootstrap", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bootstrapped":false`)

	// First administrator is created and logged in
	code, body := postJSON(t, router, "/api/v1/auth/bootstrap", gin.H{
		"name":             "Ana",
		"email":            "ana@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, code)
	assert.NotEmpty(t, body["access_token"])

	// Status flips and a second bootstrap is refused
	req = httptest.NewRequest("GET", "/api/v1/auth/bootstrap", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"bootstrapped":true`)

	code, body = postJSON(t, router, "/api/v1/auth/bootstrap", gin.H{
		"name":             "Intrusa",
		"email":            "intrusa@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, models.ErrConflict, body["code"])
}

func TestMeEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router, admins := setupAuthRouter(t, db)

	_, err := admins.Create(context.Background(), "Ana", "ana@example.com", "secret123", "secret123")
	require.NoError(t, err)

	_, login := postJSON(t, router, "/api/v1/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	token := login["access_token"].(string)

	req := httptest.NewRequest("GET", "/api/v1/protected/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")

	// No token, no session
	req = httptest.NewRequest("GET", "/api/v1/protected/me", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
