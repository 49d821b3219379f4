// Package handlers provides the HTTP handlers for the public and admin API.
//
// This file holds the response helpers. Every error goes out as an
// ErrorResponse with a stable code; server errors are also logged through
// the request-scoped logger.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/warri-apartment-hunt/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go)
	Code string `json:"code" example:"validation_failed"`
	// Input field at fault, for validation errors
	Field string `json:"field,omitempty" example:"phone"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"phone: please enter a valid Nigerian phone number"`
}

func fail(c *gin.Context, status int, code, msg string) {
	failField(c, status, code, "", msg)
}

func failField(c *gin.Context, status int, code, field, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Field:     field,
		Message:   msg,
	})
}

// Fail writes an error envelope. The router uses it for 404 and 405.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
