package service

import (
	"context"

	"book-inventory/internal/domains/book/model"
)

// Service - book use cases behind the HTTP handlers and the cover worker
type Service interface {
	ListBooks(ctx context.Context, search string) ([]model.BookListItem, error)
	GetBook(ctx context.Context, id int64) (*model.BookDetail, error)
	GetEditForm(ctx context.Context, id int64) (*model.BookEditForm, error)
	GetFormOptions(ctx context.Context) (*model.FormOptions, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookDetail, error)
	UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.BookDetail, error)
	DeleteBook(ctx context.Context, id int64) error
	UploadCover(ctx context.Context, id int64, data []byte) (string, error)
	ProcessCover(ctx context.Context, p CoverTaskPayload) error
}

// CoverStorage is the object store the covers live in
type CoverStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}
