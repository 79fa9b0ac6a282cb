package model

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNotFound        = errors.New("entry not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrHasBooks        = errors.New("entry still associated with one or more books")
	ErrNothingToUpdate = errors.New("no fields to update")
)

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrHasBooks):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrNothingToUpdate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode is prefixed with the kind, e.g. GENRE_NOT_FOUND
func (k Kind) ErrorCode(err error) string {
	prefix := strings.ToUpper(k.Label)
	switch {
	case errors.Is(err, ErrNotFound):
		return prefix + "_NOT_FOUND"
	case errors.Is(err, ErrHasBooks):
		return prefix + "_HAS_BOOKS"
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrNothingToUpdate):
		return "BAD_REQUEST"
	default:
		return "INTERNAL_ERROR"
	}
}

// Message is the client-facing message for err
func (k Kind) Message(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return k.Title() + " not found"
	case errors.Is(err, ErrHasBooks):
		return "Can't delete " + k.Label + ": still associated with one or more books"
	case errors.Is(err, ErrInvalidID):
		return "invalid " + k.Label + " id"
	case ToHTTPStatus(err) == http.StatusInternalServerError:
		return "Internal server error"
	default:
		return err.Error()
	}
}
