package controllers

import (
	"net/http"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps a service error onto an HTTP status using the error
// taxonomy code, logs it, and renders the message so nothing is silently
// swallowed.
func respondError(c *gin.Context, err error) {
	code := models.CodeOf(err)

	var status int
	switch code {
	case models.ErrValidationFailed:
		status = http.StatusBadRequest
	case models.ErrNotFound:
		status = http.StatusNotFound
	case models.ErrConflict, models.ErrReferentialConflict:
		status = http.StatusConflict
	case models.ErrInvalidCredentials, models.ErrEmailNotConfirmed, models.ErrUnauthorized:
		status = http.StatusUnauthorized
	case models.ErrForbidden:
		status = http.StatusForbidden
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	}

	c.JSON(status, models.NewAPIError(code, err.Error()))
}
