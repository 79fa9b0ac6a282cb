package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"book-inventory/internal/shared/format"
)

var genders = []interface{}{"male", "female"}

// CreateAuthorRequest - POST /v1/authors
type CreateAuthorRequest struct {
	Name        string  `json:"name"`
	Gender      *string `json:"gender,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	DOB         *string `json:"dob,omitempty"`
}

func (r *CreateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = lowerOptional(r.Gender)
	r.Nationality = trimOptional(r.Nationality)
	r.Bio = trimOptional(r.Bio)
	r.DOB = trimOptional(r.DOB)
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Author name is required"),
			validation.RuneLength(1, 100).Error("Author name must be between 1 and 100 characters"),
		),
		validation.Field(&r.Gender, validation.In(genders...).Error(`Gender must be either "male" or "female"`)),
		validation.Field(&r.Nationality,
			validation.RuneLength(0, 50).Error("Nationality must be at most 50 characters"),
			is.Alpha.Error("Nationality must be real words."),
		),
		validation.Field(&r.DOB, validation.Date(time.DateOnly).Error("Date of birth must be a valid date (YYYY-MM-DD)")),
	)
}

func (r CreateAuthorRequest) ToAuthor() (*Author, error) {
	dob, err := parseDate(r.DOB)
	if err != nil {
		return nil, err
	}
	return &Author{
		Name:        r.Name,
		Gender:      r.Gender,
		Nationality: r.Nationality,
		Bio:         r.Bio,
		DOB:         dob,
	}, nil
}

// UpdateAuthorRequest - PATCH /v1/authors/:id, every field optional
type UpdateAuthorRequest struct {
	Name        *string `json:"name,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	DOB         *string `json:"dob,omitempty"`
}

func (r *UpdateAuthorRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	r.Gender = lowerOptional(r.Gender)
	r.Nationality = trimOptional(r.Nationality)
	if r.Bio != nil {
		b := strings.TrimSpace(*r.Bio)
		r.Bio = &b
	}
	r.DOB = trimOptional(r.DOB)
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Required.Error("Author name is required")),
			validation.RuneLength(1, 100).Error("Author name must be between 1 and 100 characters"),
		),
		validation.Field(&r.Gender, validation.In(genders...).Error(`Gender must be either "male" or "female"`)),
		validation.Field(&r.Nationality,
			validation.RuneLength(0, 50).Error("Nationality must be at most 50 characters"),
			is.Alpha.Error("Nationality must be real words."),
		),
		validation.Field(&r.DOB, validation.Date(time.DateOnly).Error("Date of birth must be a valid date (YYYY-MM-DD)")),
	)
}

func (r UpdateAuthorRequest) ToUpdate() (AuthorUpdate, error) {
	dob, err := parseDate(r.DOB)
	if err != nil {
		return AuthorUpdate{}, err
	}
	return AuthorUpdate{
		Name:        r.Name,
		Gender:      r.Gender,
		Nationality: r.Nationality,
		Bio:         r.Bio,
		DOB:         dob,
	}, nil
}

// ============================================
// RESPONSES
// ============================================

type AuthorListItem struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

type AuthorDetail struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	DOB         string `json:"dob"`
	Bio         string `json:"bio"`
}

// AuthorEditForm - raw values, empty strings for nulls
type AuthorEditForm struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	DOB         string `json:"dob"`
	Bio         string `json:"bio"`
}

func ToListItem(a Author) AuthorListItem {
	return AuthorListItem{
		ID:     a.ID,
		Name:   format.CapitalizeAll(a.Name),
		Gender: format.CapitalizedOr(a.Gender, format.NotAvailable),
	}
}

func ToListItems(authors []Author) []AuthorListItem {
	items := make([]AuthorListItem, len(authors))
	for i, a := range authors {
		items[i] = ToListItem(a)
	}
	return items
}

func ToDetail(a Author) AuthorDetail {
	return AuthorDetail{
		ID:          a.ID,
		Name:        a.Name,
		Gender:      format.CapitalizedOr(a.Gender, format.NotAvailable),
		Nationality: format.CapitalizedOr(a.Nationality, format.NotAvailable),
		DOB:         format.DateOr(a.DOB, format.NotAvailable),
		Bio:         format.CapitalizedOr(a.Bio, format.NoBiography),
	}
}

func ToEditForm(a Author) AuthorEditForm {
	return AuthorEditForm{
		ID:          a.ID,
		Name:        a.Name,
		Gender:      deref(a.Gender),
		Nationality: deref(a.Nationality),
		DOB:         format.ISODate(a.DOB),
		Bio:         deref(a.Bio),
	}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func lowerOptional(s *string) *string {
	s = trimOptional(s)
	if s == nil {
		return nil
	}
	v := strings.ToLower(*s)
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
