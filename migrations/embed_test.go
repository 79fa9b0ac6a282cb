package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedFS_ContainsMigrations(t *testing.T) {
	entries, err := FS.ReadDir(".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.Contains(t, names, "00001_initial_schema.sql")
	assert.Contains(t, names, "00002_lookup_indexes.sql")
}

func TestEmbeddedFS_MigrationsHaveGooseDirectives(t *testing.T) {
	entries, err := FS.ReadDir(".")
	require.NoError(t, err)

	for _, e := range entries {
		content, err := FS.ReadFile(e.Name())
		require.NoError(t, err)

		s := string(content)
		assert.True(t, strings.Contains(s, "-- +goose Up"), "%s missing Up", e.Name())
		assert.True(t, strings.Contains(s, "-- +goose Down"), "%s missing Down", e.Name())
	}
}

func TestInitialSchema_JoinTableConstraints(t *testing.T) {
	content, err := FS.ReadFile("00001_initial_schema.sql")
	require.NoError(t, err)
	s := string(content)

	for _, join := range []string{"book_authors", "book_genres", "book_languages"} {
		assert.Contains(t, s, "CREATE TABLE IF NOT EXISTS "+join)
	}
	assert.Contains(t, s, "UNIQUE (book_id, author_id)")
	assert.Contains(t, s, "UNIQUE (book_id, genre_id)")
	assert.Contains(t, s, "UNIQUE (book_id, language_id)")
	// rows go with their book, but a referenced entry cannot be deleted
	assert.Equal(t, 3, strings.Count(s, "REFERENCES books (id) ON DELETE CASCADE"))
	assert.Equal(t, 3, strings.Count(s, "ON DELETE RESTRICT"))
}
