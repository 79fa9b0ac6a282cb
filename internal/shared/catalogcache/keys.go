// Package catalogcache owns the cache key layout and the single place where catalog keys are invalidated.
package catalogcache

import "fmt"

// Kind names a lookup entity in cache keys
type Kind string

const (
	KindAuthor   Kind = "author"
	KindGenre    Kind = "genre"
	KindLanguage Kind = "language"
)

const (
	KeyAllBooks     = "books:all"
	KeyAllAuthors   = "authors:all"
	KeyAllGenres    = "genres:all"
	KeyAllLanguages = "languages:all"
)

func BookKey(id int64) string {
	return fmt.Sprintf("book:%d", id)
}

func EntityKey(kind Kind, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// BooksOfKey is the key for the book list of one author, genre or language
func BooksOfKey(kind Kind, id int64) string {
	return fmt.Sprintf("%s:%d:books", kind, id)
}

// ListKey is the key for the full list of a kind
func ListKey(kind Kind) string {
	switch kind {
	case KindAuthor:
		return KeyAllAuthors
	case KindGenre:
		return KeyAllGenres
	case KindLanguage:
		return KeyAllLanguages
	}
	return string(kind) + "s:all"
}

var kinds = []Kind{KindAuthor, KindGenre, KindLanguage}
