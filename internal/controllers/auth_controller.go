package controllers

import (
	"net/http"
	"time"

	"github.com/casadocafe/cardapio-api/internal/auth"
	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthController handles the back-office login surface: JSON login, first-run
// bootstrap and session introspection
type AuthController interface {
	Login(c *gin.Context)
	BootstrapStatus(c *gin.Context)
	Bootstrap(c *gin.Context)
	Me(c *gin.Context)
}

type authController struct {
	admins    services.AdminService
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(admins services.AdminService, jwtSecret string) *authController {
	return &authController{admins: admins, jwtSecret: []byte(jwtSecret), now: time.Now}
}

// LoginRequest is the payload for the JSON login endpoint
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// BootstrapRequest is the payload for creating the first administrator
type BootstrapRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// Login godoc
// @Summary Administrator login
// @Description Verify credentials and return a back-office session token. Wrong credentials and an unconfirmed email produce distinct error codes.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /api/v1/auth/login [post]
func (ac *authController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, models.NewValidationError(err.Error()))
		return
	}

	admin, err := ac.admins.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ac.respondSession(ctx, admin)
}

// BootstrapStatus godoc
// @Summary Bootstrap status
// @Description Report whether at least one administrator exists; the first-run setup form is only shown when none does
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/auth/bootstrap [get]
func (ac *authController) BootstrapStatus(ctx *gin.Context) {
	hasAny, err := ac.admins.HasAny(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"bootstrapped": hasAny})
}

// Bootstrap godoc
// @Summary Create the first administrator
// @Description Register the first administrator account and log it in. Refused once any administrator exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param admin body BootstrapRequest true "First administrator"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/auth/bootstrap [post]
func (ac *authController) Bootstrap(ctx *gin.Context) {
	var req BootstrapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, models.NewValidationError(err.Error()))
		return
	}

	hasAny, err := ac.admins.HasAny(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if hasAny {
		respondError(ctx, models.NewConflictError("an administrator already exists"))
		return
	}

	admin, err := ac.admins.Create(ctx, req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, expiresIn, err := auth.SignAdminToken(ac.jwtSecret, admin, ac.now())
	if err != nil {
		respondError(ctx, models.NewBackendError("failed to sign session token", err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   expiresIn,
		"admin":        sessionAdmin(admin),
	})
}

// Me godoc
// @Summary Current session
// @Description Get the administrator behind the current session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Administrator
// @Failure 401 {object} models.APIError
// @Router /api/v1/protected/me [get]
func (ac *authController) Me(ctx *gin.Context) {
	email, _ := ctx.Get("userEmail")
	sessionEmail, _ := email.(string)
	if sessionEmail == "" {
		respondError(ctx, models.NewAuthError(models.ErrUnauthorized, "session carries no administrator"))
		return
	}

	admin, err := ac.admins.GetByEmail(ctx, sessionEmail)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, admin)
}

func (ac *authController) respondSession(ctx *gin.Context, admin models.Administrator) {
	token, expiresIn, err := auth.SignAdminToken(ac.jwtSecret, admin, ac.now())
	if err != nil {
		respondError(ctx, models.NewBackendError("failed to sign session token", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   expiresIn,
		"admin":        sessionAdmin(admin),
	})
}

func sessionAdmin(admin models.Administrator) gin.H {
	return gin.H{
		"id":            admin.ID,
		"name":          admin.Name,
		"email":         admin.Email,
		"last_login_at": admin.LastLoginAt,
	}
}
