package catalogcache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"book-inventory/pkg/cache"
)

// Invalidator is the only component that deletes catalog keys.
// A nil cache turns every method into a no-op. Failures are logged, never returned.
type Invalidator struct {
	cache cache.Cache
}

func NewInvalidator(c cache.Cache) *Invalidator {
	return &Invalidator{cache: c}
}

// BookChanged runs after a book write commits. Reconciliation may have created authors,
// genres or languages and moved the book between their lists, so every list and every
// per-entity book list is dropped along with the book itself.
func (i *Invalidator) BookChanged(ctx context.Context, bookID int64) {
	if i == nil || i.cache == nil {
		return
	}

	i.delete(ctx, BookKey(bookID), KeyAllBooks, KeyAllAuthors, KeyAllGenres, KeyAllLanguages)
	for _, k := range kinds {
		i.deletePattern(ctx, string(k)+":*:books")
	}
}

// EntityChanged runs after an author, genre or language is created, updated or deleted.
// Book rows embed entity names, so every book key and per-entity book list goes too.
func (i *Invalidator) EntityChanged(ctx context.Context, kind Kind, id int64) {
	if i == nil || i.cache == nil {
		return
	}

	i.delete(ctx, ListKey(kind), EntityKey(kind, id), KeyAllBooks)
	i.deletePattern(ctx, "book:*")
	for _, k := range kinds {
		i.deletePattern(ctx, string(k)+":*:books")
	}
}

func (i *Invalidator) delete(ctx context.Context, keys ...string) {
	if err := i.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("[CACHE] Failed to delete keys")
	}
}

func (i *Invalidator) deletePattern(ctx context.Context, pattern string) {
	if err := i.cache.DeletePattern(ctx, pattern); err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("[CACHE] Failed to delete pattern")
	}
}

// Fetch is the read-through path: return the cached value under key, or call load
// and store its result. Cache errors degrade to a plain load.
func Fetch[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c != nil {
		var cached T
		found, err := c.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[CACHE] Get failed")
		} else if found {
			return cached, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if c != nil {
		if err := c.Set(ctx, key, value, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[CACHE] Set failed")
		}
	}
	return value, nil
}
