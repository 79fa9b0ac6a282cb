// Package model describes the genre and language lookup tables, which share one shape.
package model

import (
	"strings"

	bookModel "book-inventory/internal/domains/book/model"
	"book-inventory/internal/shared/catalogcache"
)

// Kind is one lookup table: genres or languages
type Kind struct {
	Entity    bookModel.Entity
	Label     string
	CacheKind catalogcache.Kind
}

var (
	Genres    = Kind{Entity: bookModel.Genres, Label: "genre", CacheKind: catalogcache.KindGenre}
	Languages = Kind{Entity: bookModel.Languages, Label: "language", CacheKind: catalogcache.KindLanguage}
)

func (k Kind) Table() string     { return k.Entity.Table() }
func (k Kind) JoinTable() string { return k.Entity.JoinTable() }
func (k Kind) Column() string    { return k.Entity.Column() }

// Title is the capitalized label used in messages, e.g. "Genre"
func (k Kind) Title() string {
	if k.Label == "" {
		return ""
	}
	return strings.ToUpper(k.Label[:1]) + k.Label[1:]
}

// Entry is one genres or languages row
type Entry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
