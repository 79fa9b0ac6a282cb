package repository

import (
	"context"

	"book-inventory/internal/domains/author/model"
)

// Repository defines author data access
type Repository interface {
	// List returns every author ordered by name
	List(ctx context.Context) ([]model.Author, error)

	// GetByID returns ErrAuthorNotFound when the row does not exist
	GetByID(ctx context.Context, id int64) (*model.Author, error)

	Create(ctx context.Context, a *model.Author) (int64, error)

	// Update writes only the set fields
	Update(ctx context.Context, id int64, upd model.AuthorUpdate) error

	// Delete refuses with ErrAuthorHasBooks while any book_authors row references the author
	Delete(ctx context.Context, id int64) error
}
