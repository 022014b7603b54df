package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/glossa-api/internal/service/auth"
	"github.com/phrazzld/glossa-api/internal/service/study"
	syncservice "github.com/phrazzld/glossa-api/internal/service/sync"
	"github.com/phrazzld/glossa-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, study.ErrCardNotOwned),
		errors.Is(err, syncservice.ErrCardNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, study.ErrCardNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrWordExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, study.ErrInvalidRating),
		errors.Is(err, study.ErrNilExtract),
		errors.Is(err, syncservice.ErrEmptyBatch):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, study.ErrCardNotOwned),
		errors.Is(err, syncservice.ErrCardNotOwned):
		return "You do not own this card"

	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, study.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrWordExists):
		return "Word already exists in the card set"

	case errors.Is(err, study.ErrInvalidRating):
		return "Invalid review rating"

	case errors.Is(err, study.ErrNilExtract):
		return "Extraction produced no result"

	case errors.Is(err, syncservice.ErrEmptyBatch):
		return "Sync batch contains no cards"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid card data"

	default:
		return "An unexpected error occurred"
	}
}
