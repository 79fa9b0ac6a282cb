package model

import "book-inventory/internal/shared/catalogcache"

// Entity is one of the lookup tables a book is linked to.
// Table and column names come only from this closed set, never from request data.
type Entity int

const (
	Authors Entity = iota + 1
	Genres
	Languages
)

// AllEntities lists the kinds in the order they are synchronised
var AllEntities = []Entity{Authors, Genres, Languages}

type entityTables struct {
	table     string
	joinTable string
	column    string
	kind      catalogcache.Kind
}

var entities = map[Entity]entityTables{
	Authors:   {table: "authors", joinTable: "book_authors", column: "author_id", kind: catalogcache.KindAuthor},
	Genres:    {table: "genres", joinTable: "book_genres", column: "genre_id", kind: catalogcache.KindGenre},
	Languages: {table: "languages", joinTable: "book_languages", column: "language_id", kind: catalogcache.KindLanguage},
}

func (e Entity) Valid() bool {
	_, ok := entities[e]
	return ok
}

// Table is the lookup table, e.g. "genres"
func (e Entity) Table() string {
	return entities[e].table
}

// JoinTable is the association table, e.g. "book_genres"
func (e Entity) JoinTable() string {
	return entities[e].joinTable
}

// Column is the foreign key column in the join table, e.g. "genre_id"
func (e Entity) Column() string {
	return entities[e].column
}

func (e Entity) CacheKind() catalogcache.Kind {
	return entities[e].kind
}

func (e Entity) String() string {
	if !e.Valid() {
		return "unknown"
	}
	return e.Table()
}
