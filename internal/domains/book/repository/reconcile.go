package repository

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"book-inventory/internal/domains/book/model"
	"book-inventory/pkg/database"
)

var tracer = otel.Tracer("book-inventory/book")

const lockSQL = `SELECT pg_advisory_xact_lock(hashtext($1))`

// ProcessEntity resolves free-text names against the lookup table of e and returns
// one id per name, in input order. Names are matched case-insensitively; names with
// no match are inserted with their original casing. A later case variant of a name
// inserted by this call reuses its id, so the result may repeat ids.
//
// q is normally the pgx.Tx of the enclosing book write.
func ProcessEntity(ctx context.Context, q database.Querier, e model.Entity, names []string) ([]int64, error) {
	if !e.Valid() {
		return nil, model.ErrUnknownEntity
	}
	if len(names) == 0 {
		return []int64{}, nil
	}

	ctx, span := tracer.Start(ctx, "book.ProcessEntity")
	defer span.End()
	span.SetAttributes(
		attribute.String("entity", e.Table()),
		attribute.Int("names", len(names)),
	)

	// concurrent writers introducing the same new name queue here until commit
	if _, err := q.Exec(ctx, lockSQL, e.Table()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lock failed")
		return nil, fmt.Errorf("lock %s: %w", e.Table(), err)
	}

	existing, err := findExisting(ctx, q, e, lowerUnique(names))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, err
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, e.Table())
	inserted := 0

	ids, err := ResolveIDs(names, existing, func(name string) (int64, error) {
		var id int64
		if err := q.QueryRow(ctx, insertSQL, name).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert into %s: %w", e.Table(), err)
		}
		inserted++
		return id, nil
	})
	span.SetAttributes(attribute.Int("inserted", inserted))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}

	return ids, nil
}

// ResolveIDs maps names to ids through existing, keyed by lower-cased name.
// insert is called once per distinct unmatched name, in input order.
func ResolveIDs(names []string, existing map[string]int64, insert func(name string) (int64, error)) ([]int64, error) {
	known := make(map[string]int64, len(existing)+len(names))
	for k, v := range existing {
		known[k] = v
	}

	ids := make([]int64, len(names))
	for i, name := range names {
		key := strings.ToLower(name)

		id, ok := known[key]
		if !ok {
			newID, err := insert(name)
			if err != nil {
				return nil, err
			}
			id = newID
			known[key] = id
		}
		ids[i] = id
	}

	return ids, nil
}

func findExisting(ctx context.Context, q database.Querier, e model.Entity, lowered []string) (map[string]int64, error) {
	query := fmt.Sprintf(
		`SELECT id, LOWER(name) FROM %s WHERE LOWER(name) = ANY($1::text[]) ORDER BY id`,
		e.Table(),
	)

	rows, err := q.Query(ctx, query, lowered)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", e.Table(), err)
	}
	defer rows.Close()

	existing := make(map[string]int64, len(lowered))
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", e.Table(), err)
		}
		// rows that already differ only by case: the oldest wins
		if _, seen := existing[name]; !seen {
			existing[name] = id
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return existing, nil
}

// InsertJoins makes the book's rows in the join table of e exactly equal to ids
func InsertJoins(ctx context.Context, q database.Querier, e model.Entity, bookID int64, ids []int64) error {
	if !e.Valid() {
		return model.ErrUnknownEntity
	}

	deleteSQL := fmt.Sprintf(`DELETE FROM %s WHERE book_id = $1`, e.JoinTable())
	if _, err := q.Exec(ctx, deleteSQL, bookID); err != nil {
		return fmt.Errorf("clear %s: %w", e.JoinTable(), err)
	}

	insertSQL := fmt.Sprintf(
		`INSERT INTO %s (book_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		e.JoinTable(), e.Column(),
	)
	for _, id := range uniqueIDs(ids) {
		if _, err := q.Exec(ctx, insertSQL, bookID, id); err != nil {
			return fmt.Errorf("insert into %s: %w", e.JoinTable(), err)
		}
	}

	return nil
}

// SyncAssociations reconciles and rewrites every association list present in assoc.
// Authors, genres and languages are processed in that order on the same q.
func SyncAssociations(ctx context.Context, q database.Querier, bookID int64, assoc model.Associations) error {
	ctx, span := tracer.Start(ctx, "book.SyncAssociations")
	defer span.End()
	span.SetAttributes(attribute.Int64("book_id", bookID))

	for _, e := range model.AllEntities {
		names := assoc.Names(e)
		if names == nil {
			continue
		}

		ids, err := ProcessEntity(ctx, q, e, names)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("process %s: %w", e, err)
		}

		if err := InsertJoins(ctx, q, e, bookID, ids); err != nil {
			span.RecordError(err)
			return fmt.Errorf("sync %s: %w", e.JoinTable(), err)
		}
	}

	return nil
}

func lowerUnique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		l := strings.ToLower(n)
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
