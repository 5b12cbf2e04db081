package catalog

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	defaultImportLimit = 20
	maxImportLimit     = 500
)

// ImportRecord is one row of the import history.
type ImportRecord struct {
	ID         uuid.UUID `json:"id"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}

// ImportQuery filters the import history. Results are newest first.
type ImportQuery struct {
	Since   *time.Time
	Until   *time.Time
	MinRows *int
	Limit   int
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ToSQL builds the history query and its positional arguments. Limit is
// clamped to [1, 500] with 20 as the default.
func (q *ImportQuery) ToSQL() (string, []any, error) {
	b := psql.
		Select("id", "row_count", "imported_at").
		From("catalog_imports").
		OrderBy("imported_at DESC", "id")

	if q.Since != nil {
		b = b.Where(sq.GtOrEq{"imported_at": *q.Since})
	}
	if q.Until != nil {
		b = b.Where(sq.Lt{"imported_at": *q.Until})
	}
	if q.MinRows != nil {
		b = b.Where(sq.GtOrEq{"row_count": *q.MinRows})
	}

	limit := q.Limit
	switch {
	case limit <= 0:
		limit = defaultImportLimit
	case limit > maxImportLimit:
		limit = maxImportLimit
	}
	b = b.Limit(uint64(limit))

	return b.ToSql()
}

// Imports returns the import history matching q.
func (s *PostgresSource) Imports(ctx context.Context, q ImportQuery) ([]ImportRecord, error) {
	query, args, err := q.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building import query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[ImportRecord])
	if err != nil {
		return nil, fmt.Errorf("scanning imports: %w", err)
	}
	return records, nil
}
