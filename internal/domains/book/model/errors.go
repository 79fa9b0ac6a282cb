package model

import (
	"errors"
	"net/http"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrInvalidBookID    = errors.New("invalid book id")
	ErrNothingToUpdate  = errors.New("no fields to update")
	ErrInvalidCover     = errors.New("cover must be a JPEG or PNG image up to 5MB")
	ErrCoverUnavailable = errors.New("cover storage is not configured")
	ErrUnknownEntity    = errors.New("unknown entity kind")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrInvalidBookID), errors.Is(err, ErrNothingToUpdate):
		return "BAD_REQUEST"
	case errors.Is(err, ErrInvalidCover):
		return "INVALID_COVER"
	case errors.Is(err, ErrCoverUnavailable):
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidBookID), errors.Is(err, ErrNothingToUpdate), errors.Is(err, ErrInvalidCover):
		return http.StatusBadRequest
	case errors.Is(err, ErrCoverUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ToMessage is the client-facing message; internal errors are not exposed
func ToMessage(err error) string {
	if ToHTTPStatus(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
