package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

// writeError is the single boundary mapping from domain errors to HTTP
// statuses. Business logic never writes responses itself.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, service.ErrCategoryExists):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "category already exists"})
	case errors.Is(err, service.ErrInvalidTransaction):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrRefreshInvalid):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "refresh token invalid or expired"})
	case errors.Is(err, service.ErrTokenInvalid), errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "invalid or expired token"})
	default:
		c.JSON(http.StatusInternalServerError, internalError(err))
	}
}

// writeValidationError reports binding failures. Like internalError, the
// underlying cause stays out of responses in release mode.
func writeValidationError(c *gin.Context, err error) {
	resp := model.ErrorResponse{Error: "validation error"}
	if gin.Mode() != gin.ReleaseMode {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// internalError hides the underlying cause in release mode.
func internalError(err error) model.ErrorResponse {
	resp := model.ErrorResponse{Error: "internal server error"}
	if gin.Mode() != gin.ReleaseMode {
		resp.Details = err.Error()
	}
	return resp
}
