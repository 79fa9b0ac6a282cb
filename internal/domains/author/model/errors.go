package model

import (
	"errors"
	"net/http"
)

// HasBooksMessage is shown when a referenced author is deleted
const HasBooksMessage = "Can't delete author: still associated with one or more books"

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrInvalidAuthorID = errors.New("invalid author id")
	ErrAuthorHasBooks  = errors.New("author still associated with one or more books")
	ErrNothingToUpdate = errors.New("no fields to update")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrAuthorHasBooks):
		return "AUTHOR_HAS_BOOKS"
	case errors.Is(err, ErrInvalidAuthorID), errors.Is(err, ErrNothingToUpdate):
		return "BAD_REQUEST"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthorHasBooks):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidAuthorID), errors.Is(err, ErrNothingToUpdate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func ToMessage(err error) string {
	switch {
	case errors.Is(err, ErrAuthorHasBooks):
		return HasBooksMessage
	case ToHTTPStatus(err) == http.StatusInternalServerError:
		return "Internal server error"
	default:
		return err.Error()
	}
}
