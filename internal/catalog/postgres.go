package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

const defaultPoolSize = 10

// PostgresSource implements Source over a catalog_rows table holding one
// JSONB document per row.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// ImportResult describes a completed import.
type ImportResult struct {
	ID   uuid.UUID
	Rows map[Kind]int
}

// Total returns the number of rows written.
func (r ImportResult) Total() int {
	n := 0
	for _, c := range r.Rows {
		n += c
	}
	return n
}

// NewPostgresSource creates a PostgresSource with connection pooling.
func NewPostgresSource(ctx context.Context, connString string) (*PostgresSource, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultPoolSize
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresSource{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresSource) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresSource) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) (*domain.Catalog, error) {
	raw, err := s.LoadRaw(ctx)
	if err != nil {
		return nil, err
	}
	return Build(raw), nil
}

// LoadRaw reads every row, grouped by kind in position order.
func (s *PostgresSource) LoadRaw(ctx context.Context) (*Raw, error) {
	rows, err := s.pool.Query(ctx, queryLoadRows)
	if err != nil {
		return nil, fmt.Errorf("querying catalog rows: %w", err)
	}
	defer rows.Close()

	docs := make(map[Kind][]json.RawMessage)
	for rows.Next() {
		var (
			kind string
			doc  []byte
		)
		if err := rows.Scan(&kind, &doc); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		docs[Kind(kind)] = append(docs[Kind(kind)], json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog rows: %w", err)
	}

	return decodeDocs(docs)
}

// Import replaces the stored catalog with raw in a single transaction.
func (s *PostgresSource) Import(ctx context.Context, raw *Raw) (ImportResult, error) {
	docs, err := encodeDocs(raw)
	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{ID: uuid.New(), Rows: make(map[Kind]int, len(Kinds))}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, queryDeleteRows); err != nil {
		return ImportResult{}, fmt.Errorf("clearing catalog rows: %w", err)
	}

	batch := &pgx.Batch{}
	for _, k := range Kinds {
		for i, doc := range docs[k] {
			batch.Queue(queryInsertRow, pgx.NamedArgs{
				"kind":     string(k),
				"position": i,
				"key":      rowKey(doc),
				"doc":      []byte(doc),
			})
		}
		res.Rows[k] = len(docs[k])
	}
	batch.Queue(queryInsertImport, pgx.NamedArgs{
		"id":        res.ID,
		"row_count": res.Total(),
	})

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return ImportResult{}, fmt.Errorf("inserting catalog rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return ImportResult{}, fmt.Errorf("committing import: %w", err)
	}

	return res, nil
}

// Counts returns the stored row count per kind.
func (s *PostgresSource) Counts(ctx context.Context) (map[Kind]int, error) {
	rows, err := s.pool.Query(ctx, queryCountRowsByKind)
	if err != nil {
		return nil, fmt.Errorf("counting catalog rows: %w", err)
	}
	defer rows.Close()

	counts := make(map[Kind]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning row count: %w", err)
		}
		counts[Kind(kind)] = n
	}
	return counts, rows.Err()
}

// encodeDocs splits each table of raw into one JSON document per row.
func encodeDocs(raw *Raw) (map[Kind][]json.RawMessage, error) {
	if raw == nil {
		raw = &Raw{}
	}
	docs := make(map[Kind][]json.RawMessage, len(Kinds))
	for _, k := range Kinds {
		target, err := raw.target(k)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(target)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", k, err)
		}
		var rows []json.RawMessage
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("splitting %s rows: %w", k, err)
		}
		docs[k] = rows
	}
	return docs, nil
}

// decodeDocs is the inverse of encodeDocs.
func decodeDocs(docs map[Kind][]json.RawMessage) (*Raw, error) {
	raw := &Raw{}
	for k, rows := range docs {
		target, err := raw.target(k)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("joining %s rows: %w", k, err)
		}
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", k, err)
		}
	}
	return raw, nil
}

// rowKey extracts the natural key of a row document: its id, product id or
// name, whichever is set first.
func rowKey(doc json.RawMessage) string {
	var k struct {
		ID        string `json:"id"`
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
	}
	if err := json.Unmarshal(doc, &k); err != nil {
		return ""
	}
	switch {
	case k.ID != "":
		return k.ID
	case k.ProductID != "":
		return k.ProductID
	default:
		return k.Name
	}
}
