package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UpdateRequest - PATCH /v1/genres/:id and /v1/languages/:id
type UpdateRequest struct {
	Name *string `json:"name"`
}

func (r *UpdateRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

// Validate applies the name rules of kind k
func (r UpdateRequest) Validate(k Kind) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NotNil.Error(k.Title()+" name is required"),
			validation.Required.Error(k.Title()+" name is required"),
			validation.RuneLength(1, 25).Error(k.Title()+" name must be between 1 and 25 characters"),
		),
	)
}
