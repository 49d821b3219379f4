// Package handlers defines the HTTP error codes used across all API
// endpoints and the single place where application errors are mapped to
// status codes.
//
// Codes are lowercase snake_case and stable; clients branch on them rather
// than on messages. Every error body carries one:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "validation_failed",
//	  "field": "phone",
//	  "message": "phone: please enter a valid Nigerian phone number"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/services"
	"github.com/tbourn/warri-apartment-hunt/internal/session"
	"github.com/tbourn/warri-apartment-hunt/internal/uistate"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeUnavailable      = "unavailable"

	// Domain-specific:
	ErrCodeValidation     = "validation_failed"
	ErrCodeInvalidPatch   = "invalid_patch"
	ErrCodeUnknownKind    = "unknown_kind"
	ErrCodeNothingPending = "nothing_pending"
)

// failErr maps err onto a status and code and writes the error envelope.
// Anything unrecognised is a 500.
func failErr(c *gin.Context, err error) {
	var fe *services.FieldError
	switch {
	case errors.As(err, &fe):
		failField(c, http.StatusBadRequest, ErrCodeValidation, fe.Field, fe.Error())
	case errors.Is(err, services.ErrUnknownKind):
		fail(c, http.StatusBadRequest, ErrCodeUnknownKind, "kind must be rent or sale")
	case errors.Is(err, repo.ErrInvalidPatch):
		fail(c, http.StatusBadRequest, ErrCodeInvalidPatch, err.Error())
	case errors.Is(err, repo.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "record not found")
	case errors.Is(err, uistate.ErrNothingPending):
		fail(c, http.StatusConflict, ErrCodeNothingPending, "no delete is pending")
	case errors.Is(err, session.ErrClosed):
		fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "session was evicted, retry")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
