package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"book-inventory/internal/domains/author/model"
	"book-inventory/internal/domains/author/repository"
	bookModel "book-inventory/internal/domains/book/model"
	"book-inventory/internal/shared/catalogcache"
	"book-inventory/pkg/cache"
)

// BookLister reads the books linked to one entity; the book repository satisfies it
type BookLister interface {
	ListBooksByEntity(ctx context.Context, e bookModel.Entity, entityID int64) ([]bookModel.Book, error)
}

// Service defines the author use cases
type Service interface {
	List(ctx context.Context) ([]model.AuthorListItem, error)
	Get(ctx context.Context, id int64) (*model.AuthorDetail, error)
	GetEditForm(ctx context.Context, id int64) (*model.AuthorEditForm, error)
	BooksByAuthor(ctx context.Context, id int64) ([]bookModel.BookListItem, error)
	Create(ctx context.Context, req model.CreateAuthorRequest) (*model.AuthorDetail, error)
	Update(ctx context.Context, id int64, req model.UpdateAuthorRequest) (*model.AuthorDetail, error)
	Delete(ctx context.Context, id int64) error
}

type authorService struct {
	repo        repository.Repository
	books       BookLister
	cache       cache.Cache
	invalidator *catalogcache.Invalidator
	ttl         time.Duration
}

func NewAuthorService(repo repository.Repository, books BookLister, c cache.Cache, ttl time.Duration) Service {
	return &authorService{
		repo:        repo,
		books:       books,
		cache:       c,
		invalidator: catalogcache.NewInvalidator(c),
		ttl:         ttl,
	}
}

func (s *authorService) List(ctx context.Context) ([]model.AuthorListItem, error) {
	return catalogcache.Fetch(ctx, s.cache, catalogcache.KeyAllAuthors, s.ttl,
		func(ctx context.Context) ([]model.AuthorListItem, error) {
			authors, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			return model.ToListItems(authors), nil
		})
}

func (s *authorService) Get(ctx context.Context, id int64) (*model.AuthorDetail, error) {
	if id <= 0 {
		return nil, model.ErrInvalidAuthorID
	}

	detail, err := catalogcache.Fetch(ctx, s.cache, catalogcache.EntityKey(catalogcache.KindAuthor, id), s.ttl,
		func(ctx context.Context) (model.AuthorDetail, error) {
			a, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return model.AuthorDetail{}, err
			}
			return model.ToDetail(*a), nil
		})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *authorService) GetEditForm(ctx context.Context, id int64) (*model.AuthorEditForm, error) {
	if id <= 0 {
		return nil, model.ErrInvalidAuthorID
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	form := model.ToEditForm(*a)
	return &form, nil
}

// BooksByAuthor - formatted book rows of one author, 404 when the author is missing
func (s *authorService) BooksByAuthor(ctx context.Context, id int64) ([]bookModel.BookListItem, error) {
	if id <= 0 {
		return nil, model.ErrInvalidAuthorID
	}

	return catalogcache.Fetch(ctx, s.cache, catalogcache.BooksOfKey(catalogcache.KindAuthor, id), s.ttl,
		func(ctx context.Context) ([]bookModel.BookListItem, error) {
			if _, err := s.repo.GetByID(ctx, id); err != nil {
				return nil, err
			}
			books, err := s.books.ListBooksByEntity(ctx, bookModel.Authors, id)
			if err != nil {
				return nil, err
			}
			return bookModel.ToListItems(books), nil
		})
}

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest) (*model.AuthorDetail, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := req.ToAuthor()
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.invalidator.EntityChanged(ctx, catalogcache.KindAuthor, id)

	log.Info().Int64("author_id", id).Str("name", a.Name).Msg("[AuthorService] author created")
	return s.Get(ctx, id)
}

func (s *authorService) Update(ctx context.Context, id int64, req model.UpdateAuthorRequest) (*model.AuthorDetail, error) {
	if id <= 0 {
		return nil, model.ErrInvalidAuthorID
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	upd, err := req.ToUpdate()
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return nil, model.ErrNothingToUpdate
	}

	if err := s.repo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	s.invalidator.EntityChanged(ctx, catalogcache.KindAuthor, id)

	return s.Get(ctx, id)
}

// Delete - refused with ErrAuthorHasBooks while any book still links the author
func (s *authorService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidAuthorID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidator.EntityChanged(ctx, catalogcache.KindAuthor, id)

	log.Info().Int64("author_id", id).Msg("[AuthorService] author deleted")
	return nil
}
