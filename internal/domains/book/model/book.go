package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is a books row together with the names of its linked entities
type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Subtitle    *string         `json:"subtitle,omitempty"`
	Description *string         `json:"description,omitempty"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	CoverURL    *string         `json:"cover_url,omitempty"`
	Authors     []string        `json:"authors"`
	Genres      []string        `json:"genres"`
	Languages   []string        `json:"languages"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Associations carries the free-text names a book write links to.
// A nil list leaves that association untouched; a non-nil list replaces it.
type Associations struct {
	Authors   []string
	Genres    []string
	Languages []string
}

// Names returns the list for one entity kind
func (a Associations) Names(e Entity) []string {
	switch e {
	case Authors:
		return a.Authors
	case Genres:
		return a.Genres
	case Languages:
		return a.Languages
	}
	return nil
}

// BookUpdate is a partial update of the books row. Only non-nil fields are written.
type BookUpdate struct {
	Title       *string
	Subtitle    *string
	Description *string
	Stock       *int
	Price       *decimal.Decimal
	PublishedAt *time.Time
	CoverURL    *string
}

func (u BookUpdate) IsEmpty() bool {
	return u.Title == nil && u.Subtitle == nil && u.Description == nil &&
		u.Stock == nil && u.Price == nil && u.PublishedAt == nil && u.CoverURL == nil
}

// NamedEntity is an id/name pair from a lookup table
type NamedEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
