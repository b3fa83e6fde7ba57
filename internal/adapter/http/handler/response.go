package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/fraudlens/internal/usecase"
)

// ErrorBody is the body of every error response
type ErrorBody struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Error:  message,
		Status: usecase.StatusError,
	})
}
