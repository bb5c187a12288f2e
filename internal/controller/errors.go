package controller

import (
	"errors"
	"net/http"

	"github.com/Shibo14/ielts-mock/internal/dto"
	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/gin-gonic/gin"
)

// WriteError maps the service error taxonomy to HTTP statuses. Anything
// outside the taxonomy is a 500 with the fallback message so internals do
// not leak.
func WriteError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Operation refused"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrAlreadyFinished):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid email or password"})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback})
	}
}
