package repository

import (
	"context"

	"book-inventory/internal/domains/book/model"
)

// Repository - book data access. Writes that touch associations run in one transaction.
type Repository interface {
	ListBooks(ctx context.Context, search string) ([]model.Book, error)
	ListBooksByEntity(ctx context.Context, e model.Entity, entityID int64) ([]model.Book, error)
	GetBookByID(ctx context.Context, id int64) (*model.Book, error)
	CreateBook(ctx context.Context, b *model.Book, assoc model.Associations) (int64, error)
	UpdateBook(ctx context.Context, id int64, upd model.BookUpdate, assoc model.Associations) error
	DeleteBook(ctx context.Context, id int64) error
	SetCoverURL(ctx context.Context, id int64, url string) error
	ListLookup(ctx context.Context, e model.Entity) ([]model.NamedEntity, error)
}
