package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"book-inventory/internal/domains/book/model"
	"book-inventory/internal/shared/utils"
	"book-inventory/pkg/database"
)

// postgresRepository - raw SQL over pgx
type postgresRepository struct {
	db database.DB
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(db database.DB) Repository {
	return &postgresRepository{db: db}
}

const bookSelect = `
	SELECT
		b.id, b.title, b.subtitle, b.description, b.stock, b.price,
		b.published_at, b.cover_url, b.created_at, b.updated_at,
		array_remove(array_agg(DISTINCT a.name), NULL) AS authors,
		array_remove(array_agg(DISTINCT g.name), NULL) AS genres,
		array_remove(array_agg(DISTINCT l.name), NULL) AS languages
	FROM books b
	LEFT JOIN book_authors ba ON ba.book_id = b.id
	LEFT JOIN authors a ON a.id = ba.author_id
	LEFT JOIN book_genres bg ON bg.book_id = b.id
	LEFT JOIN genres g ON g.id = bg.genre_id
	LEFT JOIN book_languages bl ON bl.book_id = b.id
	LEFT JOIN languages l ON l.id = bl.language_id
`

// ============================================
// READ
// ============================================

// ListBooks - books whose title contains search, ordered by title
func (r *postgresRepository) ListBooks(ctx context.Context, search string) ([]model.Book, error) {
	query := bookSelect + `
	WHERE b.title ILIKE $1
	GROUP BY b.id
	ORDER BY b.title`

	return r.queryBooks(ctx, query, utils.LikePattern(search))
}

// ListBooksByEntity - books linked to one author, genre or language
func (r *postgresRepository) ListBooksByEntity(ctx context.Context, e model.Entity, entityID int64) ([]model.Book, error) {
	if !e.Valid() {
		return nil, model.ErrUnknownEntity
	}

	// an author's books read in id order, a genre's or language's by title
	order := "b.title"
	if e == model.Authors {
		order = "b.id"
	}

	query := bookSelect + fmt.Sprintf(`
	WHERE b.id IN (SELECT book_id FROM %s WHERE %s = $1)
	GROUP BY b.id
	ORDER BY %s`, e.JoinTable(), e.Column(), order)

	return r.queryBooks(ctx, query, entityID)
}

// GetBookByID - one book with its names
func (r *postgresRepository) GetBookByID(ctx context.Context, id int64) (*model.Book, error) {
	query := bookSelect + `
	WHERE b.id = $1
	GROUP BY b.id`

	b, err := scanBook(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return b, nil
}

// ListLookup - every row of a lookup table, ordered by name
func (r *postgresRepository) ListLookup(ctx context.Context, e model.Entity) ([]model.NamedEntity, error) {
	if !e.Valid() {
		return nil, model.ErrUnknownEntity
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name`, e.Table()))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", e.Table(), err)
	}
	defer rows.Close()

	result := make([]model.NamedEntity, 0)
	for rows.Next() {
		var ne model.NamedEntity
		if err := rows.Scan(&ne.ID, &ne.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", e.Table(), err)
		}
		result = append(result, ne)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// ============================================
// WRITE
// ============================================

// CreateBook inserts the row and its associations in one transaction
func (r *postgresRepository) CreateBook(ctx context.Context, b *model.Book, assoc model.Associations) (int64, error) {
	ctx, span := tracer.Start(ctx, "book.CreateBook")
	defer span.End()

	query := `
		INSERT INTO books (title, subtitle, description, stock, price, published_at, cover_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	id, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (int64, error) {
		var id int64
		err := tx.QueryRow(ctx, query,
			b.Title, b.Subtitle, b.Description, b.Stock, b.Price, b.PublishedAt, b.CoverURL,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert book: %w", err)
		}

		if err := SyncAssociations(ctx, tx, id, assoc); err != nil {
			return 0, err
		}
		return id, nil
	})
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("book_id", id))
	return id, nil
}

// UpdateBook locks the row, applies the set fields and rewrites the present
// association lists, all in one transaction
func (r *postgresRepository) UpdateBook(ctx context.Context, id int64, upd model.BookUpdate, assoc model.Associations) error {
	ctx, span := tracer.Start(ctx, "book.UpdateBook")
	defer span.End()
	span.SetAttributes(attribute.Int64("book_id", id))

	err := database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, `SELECT id FROM books WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrBookNotFound
		}
		if err != nil {
			return fmt.Errorf("lock book: %w", err)
		}

		query, args := buildUpdateQuery(id, upd)
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("update book: %w", err)
		}

		return SyncAssociations(ctx, tx, id, assoc)
	})
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// DeleteBook - join rows go with it through ON DELETE CASCADE
func (r *postgresRepository) DeleteBook(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) SetCoverURL(ctx context.Context, id int64, url string) error {
	tag, err := r.db.Exec(ctx, `UPDATE books SET cover_url = $1, updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		return fmt.Errorf("set cover url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// ============================================
// HELPERS
// ============================================

// buildUpdateQuery writes only the set fields, from a fixed column list.
// updated_at is always bumped so association-only edits still touch the row.
func buildUpdateQuery(id int64, u model.BookUpdate) (string, []any) {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 8)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Subtitle != nil {
		add("subtitle", *u.Subtitle)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Stock != nil {
		add("stock", *u.Stock)
	}
	if u.Price != nil {
		add("price", *u.Price)
	}
	if u.PublishedAt != nil {
		add("published_at", *u.PublishedAt)
	}
	if u.CoverURL != nil {
		add("cover_url", *u.CoverURL)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE books SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args
}

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Msg("[Repository] list books query failed")
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return books, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Subtitle, &b.Description, &b.Stock, &b.Price,
		&b.PublishedAt, &b.CoverURL, &b.CreatedAt, &b.UpdatedAt,
		&b.Authors, &b.Genres, &b.Languages,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
