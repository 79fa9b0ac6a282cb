package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"book-inventory/internal/domains/taxonomy/model"
	"book-inventory/pkg/database"
)

const foreignKeyViolation = "23503"

// Repository - data access for a lookup table. Table names come from model.Kind only.
type Repository interface {
	// ListLinked returns the entries linked to at least one book, ordered by name
	ListLinked(ctx context.Context, k model.Kind) ([]model.Entry, error)
	GetByID(ctx context.Context, k model.Kind, id int64) (*model.Entry, error)
	Rename(ctx context.Context, k model.Kind, id int64, name string) error
	// Delete refuses with ErrHasBooks while any join row references the entry
	Delete(ctx context.Context, k model.Kind, id int64) error
}

type postgresRepository struct {
	db database.DB
}

func NewPostgresRepository(db database.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListLinked(ctx context.Context, k model.Kind) ([]model.Entry, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT t.id, t.name
		FROM %s t
		JOIN %s j ON j.%s = t.id
		ORDER BY t.name`, k.Table(), k.JoinTable(), k.Column())

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", k.Table(), err)
	}
	defer rows.Close()

	entries := make([]model.Entry, 0)
	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", k.Table(), err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, k model.Kind, id int64) (*model.Entry, error) {
	var e model.Entry
	err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT id, name FROM %s WHERE id = $1`, k.Table()), id).Scan(&e.ID, &e.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", k.Label, err)
	}
	return &e, nil
}

func (r *postgresRepository) Rename(ctx context.Context, k model.Kind, id int64, name string) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`UPDATE %s SET name = $1 WHERE id = $2`, k.Table()), name, id)
	if err != nil {
		return fmt.Errorf("rename %s: %w", k.Label, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, k model.Kind, id int64) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var linked bool
		check := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, k.JoinTable(), k.Column())
		if err := tx.QueryRow(ctx, check, id).Scan(&linked); err != nil {
			return fmt.Errorf("check linked books: %w", err)
		}
		if linked {
			return model.ErrHasBooks
		}

		tag, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, k.Table()), id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return model.ErrHasBooks
			}
			return fmt.Errorf("delete %s: %w", k.Label, err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
