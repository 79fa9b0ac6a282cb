package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	bookModel "book-inventory/internal/domains/book/model"
	"book-inventory/internal/domains/taxonomy/model"
	"book-inventory/internal/domains/taxonomy/repository"
	"book-inventory/internal/shared/catalogcache"
	"book-inventory/pkg/cache"
)

type BookLister interface {
	ListBooksByEntity(ctx context.Context, e bookModel.Entity, entityID int64) ([]bookModel.Book, error)
}

// Service defines the use cases of one lookup kind
type Service interface {
	Kind() model.Kind
	List(ctx context.Context) ([]model.Entry, error)
	Get(ctx context.Context, id int64) (*model.Entry, error)
	Books(ctx context.Context, id int64) ([]bookModel.BookListItem, error)
	Update(ctx context.Context, id int64, req model.UpdateRequest) (*model.Entry, error)
	Delete(ctx context.Context, id int64) error
}

type taxonomyService struct {
	kind        model.Kind
	repo        repository.Repository
	books       BookLister
	cache       cache.Cache
	invalidator *catalogcache.Invalidator
	ttl         time.Duration
}

func NewService(kind model.Kind, repo repository.Repository, books BookLister, c cache.Cache, ttl time.Duration) Service {
	return &taxonomyService{
		kind:        kind,
		repo:        repo,
		books:       books,
		cache:       c,
		invalidator: catalogcache.NewInvalidator(c),
		ttl:         ttl,
	}
}

func (s *taxonomyService) Kind() model.Kind { return s.kind }

// List - entries linked to at least one book
func (s *taxonomyService) List(ctx context.Context) ([]model.Entry, error) {
	return catalogcache.Fetch(ctx, s.cache, catalogcache.ListKey(s.kind.CacheKind), s.ttl,
		func(ctx context.Context) ([]model.Entry, error) {
			return s.repo.ListLinked(ctx, s.kind)
		})
}

func (s *taxonomyService) Get(ctx context.Context, id int64) (*model.Entry, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}
	return s.repo.GetByID(ctx, s.kind, id)
}

func (s *taxonomyService) Books(ctx context.Context, id int64) ([]bookModel.BookListItem, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}

	return catalogcache.Fetch(ctx, s.cache, catalogcache.BooksOfKey(s.kind.CacheKind, id), s.ttl,
		func(ctx context.Context) ([]bookModel.BookListItem, error) {
			if _, err := s.repo.GetByID(ctx, s.kind, id); err != nil {
				return nil, err
			}
			books, err := s.books.ListBooksByEntity(ctx, s.kind.Entity, id)
			if err != nil {
				return nil, err
			}
			return bookModel.ToListItems(books), nil
		})
}

func (s *taxonomyService) Update(ctx context.Context, id int64, req model.UpdateRequest) (*model.Entry, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}

	req.Normalize()
	if err := req.Validate(s.kind); err != nil {
		return nil, err
	}

	if err := s.repo.Rename(ctx, s.kind, id, *req.Name); err != nil {
		return nil, err
	}
	s.invalidator.EntityChanged(ctx, s.kind.CacheKind, id)

	log.Info().Int64("id", id).Str("kind", s.kind.Label).Str("name", *req.Name).
		Msg("[TaxonomyService] entry renamed")
	return &model.Entry{ID: id, Name: *req.Name}, nil
}

func (s *taxonomyService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidID
	}

	if err := s.repo.Delete(ctx, s.kind, id); err != nil {
		return err
	}
	s.invalidator.EntityChanged(ctx, s.kind.CacheKind, id)

	log.Info().Int64("id", id).Str("kind", s.kind.Label).Msg("[TaxonomyService] entry deleted")
	return nil
}
