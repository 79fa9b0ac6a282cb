package catalogcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-inventory/pkg/cache"
)

type failingCache struct {
	cache.Cache
}

func (failingCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("redis down")
}

func (failingCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("redis down")
}

func (failingCache) Delete(context.Context, ...string) error {
	return errors.New("redis down")
}

func (failingCache) DeletePattern(context.Context, string) error {
	return errors.New("redis down")
}

func seed(t *testing.T, c *cache.MemoryCache, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, c.Set(context.Background(), k, "x", time.Minute))
	}
}

func has(c *cache.MemoryCache, key string) bool {
	var v string
	found, _ := c.Get(context.Background(), key, &v)
	return found
}

func TestBookChanged(t *testing.T) {
	mem := cache.NewMemoryCache()
	seed(t, mem,
		"book:1", "book:2", KeyAllBooks, KeyAllAuthors, KeyAllGenres, KeyAllLanguages,
		"author:1", "author:1:books", "genre:3:books", "language:4:books",
	)

	NewInvalidator(mem).BookChanged(context.Background(), 1)

	assert.False(t, has(mem, "book:1"))
	assert.True(t, has(mem, "book:2"))
	assert.True(t, has(mem, "author:1"))
	for _, k := range []string{KeyAllBooks, KeyAllAuthors, KeyAllGenres, KeyAllLanguages, "author:1:books", "genre:3:books", "language:4:books"} {
		assert.False(t, has(mem, k), k)
	}
}

func TestEntityChanged(t *testing.T) {
	mem := cache.NewMemoryCache()
	seed(t, mem, "book:1", KeyAllBooks, KeyAllGenres, KeyAllAuthors, "genre:3", "genre:4", "genre:3:books", "author:1:books")

	NewInvalidator(mem).EntityChanged(context.Background(), KindGenre, 3)

	assert.False(t, has(mem, "book:1"))
	assert.False(t, has(mem, KeyAllBooks))
	assert.False(t, has(mem, KeyAllGenres))
	assert.False(t, has(mem, "genre:3"))
	assert.False(t, has(mem, "genre:3:books"))
	assert.False(t, has(mem, "author:1:books"))
	assert.True(t, has(mem, "genre:4"))
	assert.True(t, has(mem, KeyAllAuthors))
}

func TestInvalidator_NilAndFailingCache(t *testing.T) {
	var nilInv *Invalidator
	assert.NotPanics(t, func() { nilInv.BookChanged(context.Background(), 1) })
	assert.NotPanics(t, func() { NewInvalidator(nil).EntityChanged(context.Background(), KindAuthor, 1) })
	assert.NotPanics(t, func() { NewInvalidator(failingCache{}).BookChanged(context.Background(), 1) })
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"History"}, nil
	}

	got, err := Fetch(ctx, mem, KeyAllGenres, time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"History"}, got)

	got, err = Fetch(ctx, mem, KeyAllGenres, time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"History"}, got)
	assert.Equal(t, 1, calls)
}

func TestFetch_CacheErrorsFallBackToLoad(t *testing.T) {
	got, err := Fetch(context.Background(), failingCache{}, "k", time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestFetch_LoadErrorNotCached(t *testing.T) {
	mem := cache.NewMemoryCache()
	_, err := Fetch(context.Background(), mem, "k", time.Minute, func(context.Context) (int, error) {
		return 0, errors.New("db down")
	})
	require.Error(t, err)
	assert.Equal(t, 0, mem.Len())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "book:12", BookKey(12))
	assert.Equal(t, "author:3", EntityKey(KindAuthor, 3))
	assert.Equal(t, "language:9:books", BooksOfKey(KindLanguage, 9))
	assert.Equal(t, KeyAllLanguages, ListKey(KindLanguage))
}
