package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"book-inventory/internal/domains/book/model"
	"book-inventory/internal/domains/book/repository"
	"book-inventory/internal/infrastructure/queue"
	"book-inventory/internal/infrastructure/storage"
	"book-inventory/internal/shared/catalogcache"
	"book-inventory/internal/shared/format"
	"book-inventory/pkg/cache"
)

var tracer = otel.Tracer("book-inventory/book/service")

// BookService - implements Service
type BookService struct {
	repo           repository.Repository
	cache          cache.Cache
	invalidator    *catalogcache.Invalidator
	ttl            time.Duration
	imageProcessor *storage.ImageProcessor
	storage        CoverStorage
	queue          queue.Enqueuer
}

// NewService - Constructor with DI.
// storage and queue may be nil: covers are then rejected, or processed inline.
func NewService(
	repo repository.Repository,
	c cache.Cache,
	ttl time.Duration,
	imageProcessor *storage.ImageProcessor,
	store CoverStorage,
	q queue.Enqueuer,
) *BookService {
	return &BookService{
		repo:           repo,
		cache:          c,
		invalidator:    catalogcache.NewInvalidator(c),
		ttl:            ttl,
		imageProcessor: imageProcessor,
		storage:        store,
		queue:          q,
	}
}

// ============================================
// READ
// ============================================

// ListBooks - formatted rows ordered by title. The unfiltered list is cached.
func (s *BookService) ListBooks(ctx context.Context, search string) ([]model.BookListItem, error) {
	search = strings.TrimSpace(search)

	load := func(ctx context.Context) ([]model.BookListItem, error) {
		books, err := s.repo.ListBooks(ctx, search)
		if err != nil {
			return nil, err
		}
		return model.ToListItems(books), nil
	}

	if search != "" {
		return load(ctx)
	}
	return catalogcache.Fetch(ctx, s.cache, catalogcache.KeyAllBooks, s.ttl, load)
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*model.BookDetail, error) {
	if id <= 0 {
		return nil, model.ErrInvalidBookID
	}

	detail, err := catalogcache.Fetch(ctx, s.cache, catalogcache.BookKey(id), s.ttl,
		func(ctx context.Context) (model.BookDetail, error) {
			b, err := s.repo.GetBookByID(ctx, id)
			if err != nil {
				return model.BookDetail{}, err
			}
			return model.ToDetail(*b), nil
		})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetEditForm - raw values for pre-filling the edit form. Never cached.
func (s *BookService) GetEditForm(ctx context.Context, id int64) (*model.BookEditForm, error) {
	if id <= 0 {
		return nil, model.ErrInvalidBookID
	}

	b, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	form := model.ToEditForm(*b)
	return &form, nil
}

// GetFormOptions - every genre (lowercased) and language, for the create/edit form
func (s *BookService) GetFormOptions(ctx context.Context) (*model.FormOptions, error) {
	genres, err := s.repo.ListLookup(ctx, model.Genres)
	if err != nil {
		return nil, err
	}
	for i := range genres {
		genres[i].Name = strings.ToLower(genres[i].Name)
	}

	languages, err := s.repo.ListLookup(ctx, model.Languages)
	if err != nil {
		return nil, err
	}

	return &model.FormOptions{Genres: genres, Languages: languages}, nil
}

// ============================================
// WRITE
// ============================================

// CreateBook validates the request, writes the book with its associations in one
// transaction and returns the stored detail
func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookDetail, error) {
	ctx, span := tracer.Start(ctx, "BookService.CreateBook")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, assoc, err := req.ToBook()
	if err != nil {
		return nil, err
	}
	b.Title = format.CapitalizeAll(b.Title)
	if b.Subtitle != nil {
		sub := format.Capitalize(*b.Subtitle)
		b.Subtitle = &sub
	}

	id, err := s.repo.CreateBook(ctx, b, assoc)
	if err != nil {
		log.Error().Err(err).Str("title", b.Title).Msg("[BookService] create failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int64("book_id", id))

	s.invalidator.BookChanged(ctx, id)
	log.Info().Int64("book_id", id).Str("title", b.Title).Msg("[BookService] book created")

	return s.detailAfterWrite(ctx, id)
}

// UpdateBook applies the set fields and replaces every association list present
// in the request, in one transaction
func (s *BookService) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.BookDetail, error) {
	ctx, span := tracer.Start(ctx, "BookService.UpdateBook")
	defer span.End()
	span.SetAttributes(attribute.Int64("book_id", id))

	if id <= 0 {
		return nil, model.ErrInvalidBookID
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	upd, assoc, err := req.ToUpdate()
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() && !assoc.HasAssociations() {
		return nil, model.ErrNothingToUpdate
	}
	if upd.Title != nil {
		title := format.CapitalizeAll(*upd.Title)
		upd.Title = &title
	}

	if err := s.repo.UpdateBook(ctx, id, upd, assoc); err != nil {
		return nil, err
	}

	s.invalidator.BookChanged(ctx, id)
	log.Info().Int64("book_id", id).Msg("[BookService] book updated")

	return s.detailAfterWrite(ctx, id)
}

func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidBookID
	}

	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.invalidator.BookChanged(ctx, id)

	if s.storage != nil {
		if err := s.storage.DeleteByPrefix(ctx, coverPrefix(id)); err != nil {
			log.Warn().Err(err).Int64("book_id", id).Msg("[BookService] failed to delete cover objects")
		}
	}
	return nil
}

// detailAfterWrite reads the committed row back through the cache path
func (s *BookService) detailAfterWrite(ctx context.Context, id int64) (*model.BookDetail, error) {
	detail, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload book %d: %w", id, err)
	}
	return detail, nil
}

// ============================================
// COVERS
// ============================================

// UploadCover stores the original image, points the book at it and queues the
// resize. Without a queue the variants are produced inline.
func (s *BookService) UploadCover(ctx context.Context, id int64, data []byte) (string, error) {
	if s.storage == nil {
		return "", model.ErrCoverUnavailable
	}
	if id <= 0 {
		return "", model.ErrInvalidBookID
	}

	imgFormat, err := s.imageProcessor.ValidateImage(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidCover, err)
	}

	if _, err := s.repo.GetBookByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%soriginal-%s.%s", coverPrefix(id), uuid.NewString(), imgFormat)
	url, err := s.storage.Upload(ctx, key, data, "image/"+imgFormat)
	if err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}

	if err := s.repo.SetCoverURL(ctx, id, url); err != nil {
		return "", err
	}
	s.invalidator.BookChanged(ctx, id)

	payload := CoverTaskPayload{BookID: id, Key: key}
	if s.queue == nil {
		if err := s.ProcessCover(ctx, payload); err != nil {
			log.Warn().Err(err).Int64("book_id", id).Msg("[BookService] inline cover processing failed")
		}
		return url, nil
	}

	task, err := NewProcessCoverTask(payload)
	if err != nil {
		return "", err
	}
	info, err := s.queue.Enqueue(task)
	if err != nil {
		// the original is already stored and linked; the resize can be retried later
		log.Error().Err(err).Int64("book_id", id).Msg("[BookService] failed to enqueue cover processing")
		return url, nil
	}

	log.Info().Int64("book_id", id).Str("task_id", info.ID).Msg("[BookService] cover processing queued")
	return url, nil
}

// ProcessCover builds the resized variants of an uploaded original and links the
// medium one as the book cover
func (s *BookService) ProcessCover(ctx context.Context, p CoverTaskPayload) error {
	ctx, span := tracer.Start(ctx, "BookService.ProcessCover")
	defer span.End()
	span.SetAttributes(attribute.Int64("book_id", p.BookID))

	if s.storage == nil {
		return model.ErrCoverUnavailable
	}

	original, err := s.storage.Download(ctx, p.Key)
	if err != nil {
		return fmt.Errorf("download original: %w", err)
	}

	variants, err := s.imageProcessor.ProcessCover(original)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidCover, err)
	}

	urls := make(map[string]string, len(variants))
	for name, data := range variants {
		url, err := s.storage.Upload(ctx, fmt.Sprintf("%s%s.jpg", coverPrefix(p.BookID), name), data, "image/jpeg")
		if err != nil {
			return fmt.Errorf("upload %s variant: %w", name, err)
		}
		urls[name] = url
	}

	if url, ok := urls["medium"]; ok {
		if err := s.repo.SetCoverURL(ctx, p.BookID, url); err != nil {
			return err
		}
		s.invalidator.BookChanged(ctx, p.BookID)
	}

	log.Info().Int64("book_id", p.BookID).Int("variants", len(urls)).Msg("[BookService] cover processed")
	return nil
}

func coverPrefix(id int64) string {
	return fmt.Sprintf("covers/%d/", id)
}
