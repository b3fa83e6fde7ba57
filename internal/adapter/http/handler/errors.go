package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/fraudlens/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// Typed usecase errors keep their message; anything else is masked.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrModel),
		errors.Is(err, usecase.ErrExternalService),
		errors.Is(err, usecase.ErrSerialization):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    err.Error(),
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	_ = c.Error(err)
	respondError(c, errResp.StatusCode, errResp.Message)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}
