package repository

import (
	"context"
	"fmt"

	"book-inventory/internal/domains/search/model"
	"book-inventory/pkg/database"
)

type Repository interface {
	Search(ctx context.Context, pattern string) ([]model.Hit, error)
}

type postgresRepository struct {
	db database.DB
}

func NewPostgresRepository(db database.DB) Repository {
	return &postgresRepository{db: db}
}

const searchQuery = `
	SELECT 'book' AS type, id, title AS name FROM books WHERE title ILIKE $1
	UNION ALL
	SELECT 'author' AS type, id, name FROM authors WHERE name ILIKE $1
	UNION ALL
	SELECT 'genre' AS type, id, name FROM genres WHERE name ILIKE $1
	UNION ALL
	SELECT 'language' AS type, id, name FROM languages WHERE name ILIKE $1
	ORDER BY type, name`

func (r *postgresRepository) Search(ctx context.Context, pattern string) ([]model.Hit, error) {
	rows, err := r.db.Query(ctx, searchQuery, pattern)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	var hits []model.Hit
	for rows.Next() {
		var h model.Hit
		if err := rows.Scan(&h.Type, &h.ID, &h.Name); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
