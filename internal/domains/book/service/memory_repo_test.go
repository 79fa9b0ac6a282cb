package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"book-inventory/internal/domains/book/model"
	"book-inventory/internal/domains/book/repository"
)

// memoryRepo is an in-memory repository.Repository. Lookup tables are resolved
// with the same ResolveIDs the SQL path uses.
type memoryRepo struct {
	mu     sync.Mutex
	nextID int64
	books  map[int64]model.Book
	names  map[model.Entity]map[int64]string
	links  map[model.Entity]map[int64][]int64

	failWrite error
	writes    int
}

var _ repository.Repository = (*memoryRepo)(nil)

func newMemoryRepo() *memoryRepo {
	r := &memoryRepo{
		books: map[int64]model.Book{},
		names: map[model.Entity]map[int64]string{},
		links: map[model.Entity]map[int64][]int64{},
	}
	for _, e := range model.AllEntities {
		r.names[e] = map[int64]string{}
		r.links[e] = map[int64][]int64{}
	}
	return r
}

func (r *memoryRepo) id() int64 {
	r.nextID++
	return r.nextID
}

// resolve mirrors ProcessEntity: oldest case-insensitive match wins, the rest are inserted
func (r *memoryRepo) resolve(e model.Entity, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(r.names[e]))
	for id := range r.names[e] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	existing := map[string]int64{}
	for _, id := range ids {
		key := strings.ToLower(r.names[e][id])
		if _, ok := existing[key]; !ok {
			existing[key] = id
		}
	}

	return repository.ResolveIDs(names, existing, func(name string) (int64, error) {
		id := r.id()
		r.names[e][id] = name
		return id, nil
	})
}

func (r *memoryRepo) sync(bookID int64, assoc model.Associations) error {
	for _, e := range model.AllEntities {
		names := assoc.Names(e)
		if names == nil {
			continue
		}
		ids, err := r.resolve(e, names)
		if err != nil {
			return err
		}
		seen := map[int64]bool{}
		set := make([]int64, 0, len(ids))
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				set = append(set, id)
			}
		}
		r.links[e][bookID] = set
	}
	return nil
}

func (r *memoryRepo) hydrate(b model.Book) model.Book {
	collect := func(e model.Entity) []string {
		out := []string{}
		for _, id := range r.links[e][b.ID] {
			out = append(out, r.names[e][id])
		}
		sort.Strings(out)
		return out
	}
	b.Authors = collect(model.Authors)
	b.Genres = collect(model.Genres)
	b.Languages = collect(model.Languages)
	return b
}

func (r *memoryRepo) ListBooks(_ context.Context, search string) ([]model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.Book{}
	for _, b := range r.books {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(search)) {
			out = append(out, r.hydrate(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *memoryRepo) ListBooksByEntity(_ context.Context, e model.Entity, entityID int64) ([]model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.Book{}
	for bookID, ids := range r.links[e] {
		for _, id := range ids {
			if id == entityID {
				out = append(out, r.hydrate(r.books[bookID]))
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) GetBookByID(_ context.Context, id int64) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	full := r.hydrate(b)
	return &full, nil
}

func (r *memoryRepo) CreateBook(_ context.Context, b *model.Book, assoc model.Associations) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWrite != nil {
		return 0, r.failWrite
	}
	r.writes++

	row := *b
	row.ID = r.id()
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	r.books[row.ID] = row
	return row.ID, r.sync(row.ID, assoc)
}

func (r *memoryRepo) UpdateBook(_ context.Context, id int64, upd model.BookUpdate, assoc model.Associations) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWrite != nil {
		return r.failWrite
	}
	b, ok := r.books[id]
	if !ok {
		return model.ErrBookNotFound
	}
	r.writes++

	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Subtitle != nil {
		b.Subtitle = upd.Subtitle
	}
	if upd.Description != nil {
		b.Description = upd.Description
	}
	if upd.Stock != nil {
		b.Stock = *upd.Stock
	}
	if upd.Price != nil {
		b.Price = *upd.Price
	}
	if upd.PublishedAt != nil {
		b.PublishedAt = upd.PublishedAt
	}
	if upd.CoverURL != nil {
		b.CoverURL = upd.CoverURL
	}
	b.UpdatedAt = time.Now()
	r.books[id] = b
	return r.sync(id, assoc)
}

func (r *memoryRepo) DeleteBook(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(r.books, id)
	for _, e := range model.AllEntities {
		delete(r.links[e], id)
	}
	return nil
}

func (r *memoryRepo) SetCoverURL(_ context.Context, id int64, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return model.ErrBookNotFound
	}
	b.CoverURL = &url
	r.books[id] = b
	return nil
}

func (r *memoryRepo) ListLookup(_ context.Context, e model.Entity) ([]model.NamedEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.NamedEntity{}
	for id, name := range r.names[e] {
		out = append(out, model.NamedEntity{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepo) entityCount(e model.Entity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names[e])
}

func (r *memoryRepo) linkedIDs(e model.Entity, bookID int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.links[e][bookID]...)
}
