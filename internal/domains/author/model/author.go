package model

import "time"

// Author is one authors row
type Author struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Gender      *string    `json:"gender,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	DOB         *time.Time `json:"dob,omitempty"`
}

// AuthorUpdate is a partial update; only non-nil fields are written
type AuthorUpdate struct {
	Name        *string
	Gender      *string
	Nationality *string
	Bio         *string
	DOB         *time.Time
}

func (u AuthorUpdate) IsEmpty() bool {
	return u.Name == nil && u.Gender == nil && u.Nationality == nil && u.Bio == nil && u.DOB == nil
}
