package controllers

import (
	"net/http"

	"github.com/casadocafe/cardapio-api/internal/middleware"
	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminController manages administrator accounts and the dashboard overview
type AdminController interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Delete(c *gin.Context)
	Overview(c *gin.Context)
}

type adminController struct {
	admins  services.AdminService
	catalog services.CatalogService
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(admins services.AdminService, catalog services.CatalogService) *adminController {
	return &adminController{admins: admins, catalog: catalog}
}

// CreateAdminRequest is the payload for registering an administrator
type CreateAdminRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// List godoc
// @Summary List administrators
// @Description Get all administrator accounts, newest first
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Administrator
// @Failure 401 {object} models.APIError
// @Router /api/v1/protected/admins [get]
func (ac *adminController) List(ctx *gin.Context) {
	admins, err := ac.admins.List(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, admins)
}

// Create godoc
// @Summary Create an administrator
// @Description Register a new administrator account with its login identity
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param admin body CreateAdminRequest true "Administrator data"
// @Success 201 {object} models.Administrator
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/protected/admins [post]
func (ac *adminController) Create(ctx *gin.Context) {
	var req CreateAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, models.NewValidationError(err.Error()))
		return
	}

	admin, err := ac.admins.Create(ctx, req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, admin)
}

// Delete godoc
// @Summary Delete an administrator
// @Description Remove an administrator account and its identity; deleting the account behind the current session is rejected
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Administrator ID"
// @Param email query string true "Administrator email"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/protected/admins/{id} [delete]
func (ac *adminController) Delete(ctx *gin.Context) {
	err := ac.admins.Delete(ctx, ctx.Param("id"), ctx.Query("email"), middleware.SessionEmail(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Overview godoc
// @Summary Dashboard overview
// @Description Get the back-office dashboard counters
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Router /api/v1/protected/overview [get]
func (ac *adminController) Overview(ctx *gin.Context) {
	overview, err := ac.catalog.Overview(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	adminCount, err := ac.admins.Count(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"categories": overview.Categories,
		"items":      overview.Items,
		"available":  overview.Available,
		"featured":   overview.Featured,
		"admins":     adminCount,
	})
}
