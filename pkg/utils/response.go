package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"retail-order-service/internal/apperrors"
)

type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type SuccessResponse struct {
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func RespondWithError(c *gin.Context, statusCode int, errorType, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:     errorType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func RespondWithSuccess(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, SuccessResponse{
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// RespondWithAppError maps a service layer error onto the HTTP surface.
// Errors that do not carry a kind are reported as internal.
func RespondWithAppError(c *gin.Context, err error) {
	RespondWithError(c, apperrors.StatusCodeOf(err), string(apperrors.KindOf(err)), err.Error())
}
