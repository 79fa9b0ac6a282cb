package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"

	"book-inventory/internal/shared/format"
)

const dateLayout = time.DateOnly

var (
	priceRegex      = regexp.MustCompile(`^\d+(\.\d{2})?$`)
	authorNameRegex = regexp.MustCompile(`^[a-zA-Z\s\.]{2,100}$`)
	lookupNameRegex = regexp.MustCompile(`^[a-zA-Z\s]{2,25}$`)
)

// ============================================
// INPUT TYPES
// ============================================

// NameList accepts either a JSON array of names or one comma-separated string.
// Entries are trimmed and empty entries dropped. A decoded list is never nil,
// so a present-but-empty field can be told apart from an absent one.
type NameList []string

func (n *NameList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*n = cleanNames(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return errors.New("must be a list of names or a comma-separated string")
	}
	*n = cleanNames(strings.Split(joined, ","))
	return nil
}

// ParseNameList splits a comma-separated string the same way UnmarshalJSON does
func ParseNameList(s string) NameList {
	return cleanNames(strings.Split(s, ","))
}

func cleanNames(raw []string) NameList {
	out := make(NameList, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PriceInput keeps the price exactly as sent, whether as a JSON string or number,
// so the two-decimal format can be validated before parsing.
type PriceInput string

func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceInput(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return errors.New("price must be a number")
	}
	*p = PriceInput(num.String())
	return nil
}

func (p PriceInput) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(p))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", string(p), err)
	}
	return d, nil
}

// ============================================
// CREATE
// ============================================

// CreateBookRequest - POST /v1/books
type CreateBookRequest struct {
	Title       string     `json:"title"`
	Subtitle    *string    `json:"subtitle,omitempty"`
	Description *string    `json:"description,omitempty"`
	Stock       *int       `json:"stock"`
	Price       PriceInput `json:"price"`
	PublishedAt *string    `json:"published_at,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	Authors     NameList   `json:"authors"`
	Genres      NameList   `json:"genres"`
	NewGenres   NameList   `json:"new_genres,omitempty"`
	Languages   NameList   `json:"languages"`
}

// Normalize trims text fields, turns blank optionals into nil and merges new_genres into genres
func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Subtitle = trimOptional(r.Subtitle)
	r.Description = trimOptional(r.Description)
	r.PublishedAt = trimOptional(r.PublishedAt)
	r.CoverURL = trimOptional(r.CoverURL)
	r.Genres = mergeNames(r.Genres, r.NewGenres)
	r.NewGenres = nil
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Title is required"),
			validation.RuneLength(1, 255).Error("Title must be between 1 and 255 characters"),
		),
		validation.Field(&r.Subtitle, validation.RuneLength(0, 255).Error("Subtitle must not exceed 255 characters")),
		validation.Field(&r.Stock,
			validation.NotNil.Error("Stock is required"),
			validation.Min(0).Error("Stock must be a non-negative integer"),
		),
		validation.Field(&r.Price,
			validation.Required.Error("Price is required"),
			validation.Match(priceRegex).Error("Price must have up to two decimal places"),
		),
		validation.Field(&r.PublishedAt, validation.Date(dateLayout).Error("Published date must be a valid date (YYYY-MM-DD)")),
		validation.Field(&r.CoverURL, is.URL.Error("Cover URL must be a valid URL")),
		validation.Field(&r.Authors,
			validation.Required.Error("At least one author is required"),
			validation.Each(validation.Match(authorNameRegex).Error("Each author must be 2-100 letters, spaces or dots")),
		),
		validation.Field(&r.Genres,
			validation.Required.Error("At least one genre is required"),
			validation.Each(validation.Match(lookupNameRegex).Error("Each genre must be a valid word (2-25 letters)")),
		),
		validation.Field(&r.Languages,
			validation.Required.Error("At least one language is required"),
			validation.Each(validation.Match(lookupNameRegex).Error("Each language must be a valid word (2-25 letters)")),
		),
	)
}

// ToBook converts a validated request into the row to insert and its associations
func (r CreateBookRequest) ToBook() (*Book, Associations, error) {
	price, err := r.Price.Decimal()
	if err != nil {
		return nil, Associations{}, err
	}

	publishedAt, err := parseDate(r.PublishedAt)
	if err != nil {
		return nil, Associations{}, err
	}

	stock := 0
	if r.Stock != nil {
		stock = *r.Stock
	}

	b := &Book{
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Description: r.Description,
		Stock:       stock,
		Price:       price,
		PublishedAt: publishedAt,
		CoverURL:    r.CoverURL,
	}
	assoc := Associations{
		Authors:   []string(r.Authors),
		Genres:    []string(r.Genres),
		Languages: []string(r.Languages),
	}
	return b, assoc, nil
}

// ============================================
// UPDATE
// ============================================

// UpdateBookRequest - PATCH /v1/books/:id
// Every field is optional; a list that is present replaces the book's associations.
type UpdateBookRequest struct {
	Title       *string     `json:"title,omitempty"`
	Subtitle    *string     `json:"subtitle,omitempty"`
	Description *string     `json:"description,omitempty"`
	Stock       *int        `json:"stock,omitempty"`
	Price       *PriceInput `json:"price,omitempty"`
	PublishedAt *string     `json:"published_at,omitempty"`
	CoverURL    *string     `json:"cover_url,omitempty"`
	Authors     NameList    `json:"authors,omitempty"`
	Genres      NameList    `json:"genres,omitempty"`
	NewGenres   NameList    `json:"new_genres,omitempty"`
	Languages   NameList    `json:"languages,omitempty"`
}

func (r *UpdateBookRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if r.Subtitle != nil {
		s := strings.TrimSpace(*r.Subtitle)
		r.Subtitle = &s
	}
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		r.Description = &d
	}
	r.PublishedAt = trimOptional(r.PublishedAt)
	if r.CoverURL != nil {
		u := strings.TrimSpace(*r.CoverURL)
		r.CoverURL = &u
	}
	if r.NewGenres != nil {
		r.Genres = mergeNames(r.Genres, r.NewGenres)
		r.NewGenres = nil
	}
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Required.Error("Title cannot be empty")),
			validation.RuneLength(1, 255).Error("Title must be between 1 and 255 characters"),
		),
		validation.Field(&r.Subtitle, validation.RuneLength(0, 255).Error("Subtitle must not exceed 255 characters")),
		validation.Field(&r.Stock, validation.Min(0).Error("Stock must be a non-negative integer")),
		validation.Field(&r.Price,
			validation.When(r.Price != nil, validation.Required.Error("Price cannot be empty")),
			validation.Match(priceRegex).Error("Price must have up to two decimal places"),
		),
		validation.Field(&r.PublishedAt, validation.Date(dateLayout).Error("Published date must be a valid date (YYYY-MM-DD)")),
		validation.Field(&r.CoverURL, is.URL.Error("Cover URL must be a valid URL")),
		validation.Field(&r.Authors,
			validation.When(r.Authors != nil, validation.Required.Error("Authors cannot be empty")),
			validation.Each(validation.Match(authorNameRegex).Error("Each author must be 2-100 letters, spaces or dots")),
		),
		validation.Field(&r.Genres,
			validation.When(r.Genres != nil, validation.Required.Error("Genres cannot be empty")),
			validation.Each(validation.Match(lookupNameRegex).Error("Each genre must be a valid word (2-25 letters)")),
		),
		validation.Field(&r.Languages,
			validation.When(r.Languages != nil, validation.Required.Error("Languages cannot be empty")),
			validation.Each(validation.Match(lookupNameRegex).Error("Each language must be a valid word (2-25 letters)")),
		),
	)
}

// ToUpdate converts a validated request into the typed row update and its associations
func (r UpdateBookRequest) ToUpdate() (BookUpdate, Associations, error) {
	u := BookUpdate{
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Description: r.Description,
		Stock:       r.Stock,
		CoverURL:    r.CoverURL,
	}

	if r.Price != nil {
		price, err := r.Price.Decimal()
		if err != nil {
			return BookUpdate{}, Associations{}, err
		}
		u.Price = &price
	}

	publishedAt, err := parseDate(r.PublishedAt)
	if err != nil {
		return BookUpdate{}, Associations{}, err
	}
	u.PublishedAt = publishedAt

	assoc := Associations{}
	if r.Authors != nil {
		assoc.Authors = []string(r.Authors)
	}
	if r.Genres != nil {
		assoc.Genres = []string(r.Genres)
	}
	if r.Languages != nil {
		assoc.Languages = []string(r.Languages)
	}
	return u, assoc, nil
}

// HasAssociations reports whether any list is present
func (a Associations) HasAssociations() bool {
	return a.Authors != nil || a.Genres != nil || a.Languages != nil
}

// ============================================
// RESPONSES
// ============================================

// BookListItem - one row of GET /v1/books
type BookListItem struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Subtitle  *string  `json:"subtitle,omitempty"`
	Price     string   `json:"price"`
	Stock     string   `json:"stock"`
	CoverURL  *string  `json:"cover_url,omitempty"`
	Authors   []string `json:"authors"`
	Genres    []string `json:"genres"`
	Languages []string `json:"languages"`
}

// BookDetail - GET /v1/books/:id
type BookDetail struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Description *string `json:"description"`
	Price       string  `json:"price"`
	Stock       string  `json:"stock"`
	PublishedAt string  `json:"published_at"`
	CoverURL    *string `json:"cover_url"`
	Authors     string  `json:"authors"`
	Genres      string  `json:"genres"`
	Languages   string  `json:"languages"`
}

// BookEditForm - GET /v1/books/:id/edit, raw values for pre-filling a form
type BookEditForm struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Stock       int      `json:"stock"`
	Price       string   `json:"price"`
	PublishedAt string   `json:"published_at"`
	CoverURL    string   `json:"cover_url"`
	Authors     string   `json:"authors"`
	Genres      []string `json:"genres"`
	Languages   string   `json:"languages"`
}

// FormOptions - GET /v1/books/form-options
type FormOptions struct {
	Genres    []NamedEntity `json:"genres"`
	Languages []NamedEntity `json:"languages"`
}

func ToListItem(b Book) BookListItem {
	return BookListItem{
		ID:        b.ID,
		Title:     format.Capitalize(b.Title),
		Subtitle:  b.Subtitle,
		Price:     format.Currency(b.Price),
		Stock:     format.Compact(int64(b.Stock)),
		CoverURL:  b.CoverURL,
		Authors:   nonNil(b.Authors),
		Genres:    nonNil(b.Genres),
		Languages: nonNil(b.Languages),
	}
}

func ToListItems(books []Book) []BookListItem {
	items := make([]BookListItem, len(books))
	for i, b := range books {
		items[i] = ToListItem(b)
	}
	return items
}

func ToDetail(b Book) BookDetail {
	var subtitle *string
	if b.Subtitle != nil {
		s := format.Capitalize(*b.Subtitle)
		subtitle = &s
	}

	return BookDetail{
		ID:          b.ID,
		Title:       format.Capitalize(b.Title),
		Subtitle:    subtitle,
		Description: b.Description,
		Price:       format.Currency(b.Price),
		Stock:       format.Compact(int64(b.Stock)),
		PublishedAt: format.Year(b.PublishedAt, format.Unknown),
		CoverURL:    b.CoverURL,
		Authors:     format.JoinOr(b.Authors, ""),
		Genres:      format.JoinOr(b.Genres, format.Unknown),
		Languages:   format.JoinOr(b.Languages, format.Unknown),
	}
}

func ToEditForm(b Book) BookEditForm {
	genres := make([]string, len(b.Genres))
	for i, g := range b.Genres {
		genres[i] = strings.ToLower(g)
	}

	return BookEditForm{
		ID:          b.ID,
		Title:       b.Title,
		Subtitle:    deref(b.Subtitle),
		Description: deref(b.Description),
		Stock:       b.Stock,
		Price:       b.Price.StringFixed(2),
		PublishedAt: format.ISODate(b.PublishedAt),
		CoverURL:    deref(b.CoverURL),
		Authors:     strings.Join(b.Authors, ", "),
		Genres:      genres,
		Languages:   strings.Join(b.Languages, ", "),
	}
}

// ============================================
// HELPERS
// ============================================

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *s, err)
	}
	return &t, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mergeNames(base, extra NameList) NameList {
	if len(extra) == 0 {
		return base
	}
	merged := make(NameList, 0, len(base)+len(extra))
	merged = append(merged, base...)
	return append(merged, extra...)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
