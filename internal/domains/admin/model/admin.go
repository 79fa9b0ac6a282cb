package model

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrInvalidPassword = errors.New("incorrect admin password")
	ErrTooManyAttempts = errors.New("too many login attempts")
	ErrLoginDisabled   = errors.New("admin login is not configured")
)

// LoginRequest - POST /v1/admin/login
type LoginRequest struct {
	Password string `json:"password"`
	Redirect string `json:"redirect"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

type LoginResponse struct {
	Redirect string `json:"redirect"`
}

type StatusResponse struct {
	Admin bool `json:"admin"`
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrLoginDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPassword):
		return "INVALID_PASSWORD"
	case errors.Is(err, ErrTooManyAttempts):
		return "TOO_MANY_REQUESTS"
	case errors.Is(err, ErrLoginDisabled):
		return "LOGIN_DISABLED"
	default:
		return "INTERNAL_ERROR"
	}
}
