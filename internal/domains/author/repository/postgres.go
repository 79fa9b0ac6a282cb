package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"book-inventory/internal/domains/author/model"
	"book-inventory/pkg/database"
)

// foreignKeyViolation is the SQLSTATE for a delete blocked by a referencing row
const foreignKeyViolation = "23503"

type postgresRepository struct {
	db database.DB
}

func NewPostgresRepository(db database.DB) Repository {
	return &postgresRepository{db: db}
}

const authorColumns = `id, name, gender, nationality, bio, dob`

func (r *postgresRepository) List(ctx context.Context) ([]model.Author, error) {
	rows, err := r.db.Query(ctx, `SELECT `+authorColumns+` FROM authors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	a, err := scanAuthor(r.db.QueryRow(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (int64, error) {
	query := `
		INSERT INTO authors (name, gender, nationality, bio, dob)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	if err := r.db.QueryRow(ctx, query, a.Name, a.Gender, a.Nationality, a.Bio, a.DOB).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create author: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, upd model.AuthorUpdate) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Gender != nil {
		add("gender", *upd.Gender)
	}
	if upd.Nationality != nil {
		add("nationality", *upd.Nationality)
	}
	if upd.Bio != nil {
		add("bio", *upd.Bio)
	}
	if upd.DOB != nil {
		add("dob", *upd.DOB)
	}
	if len(sets) == 0 {
		return model.ErrNothingToUpdate
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE authors SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

// Delete checks for linked books and deletes in one transaction. The foreign key
// still guards against a link committed concurrently.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var linked bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM book_authors WHERE author_id = $1)`, id).Scan(&linked)
		if err != nil {
			return fmt.Errorf("failed to check linked books: %w", err)
		}
		if linked {
			return model.ErrAuthorHasBooks
		}

		tag, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return model.ErrAuthorHasBooks
			}
			return fmt.Errorf("failed to delete author: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrAuthorNotFound
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row rowScanner) (*model.Author, error) {
	var a model.Author
	if err := row.Scan(&a.ID, &a.Name, &a.Gender, &a.Nationality, &a.Bio, &a.DOB); err != nil {
		return nil, err
	}
	return &a, nil
}
