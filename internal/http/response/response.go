// Package response provides helpers for writing HTTP responses.
package response

import (
	"errors"
	"net/http"

	"github.com/Iamalive23802/Dream-Trade/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the wire format for error payloads.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// JSON writes an arbitrary payload with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes the payload with a 200 status.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes the payload with a 201 status.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// Error writes an error payload with the given status.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// FromError maps an application error onto an HTTP response. Unknown errors
// are hidden behind a generic message so internals never leak to clients.
func FromError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		Error(c, appErr.HTTPStatus(), appErr.Message, appErr.Details)
		return
	}
	Error(c, http.StatusInternalServerError, "internal server error", nil)
}
