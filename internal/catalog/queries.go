package catalog

// SQL query constants. All SQL lives here; PostgresSource methods reference
// these constants.
const (
	queryLoadRows = `
		SELECT kind, doc
		FROM catalog_rows
		ORDER BY kind, position`

	queryDeleteRows = `DELETE FROM catalog_rows`

	queryInsertRow = `
		INSERT INTO catalog_rows (kind, position, key, doc, updated_at)
		VALUES (@kind, @position, @key, @doc, now())`

	queryInsertImport = `
		INSERT INTO catalog_imports (id, row_count)
		VALUES (@id, @row_count)`

	queryCountRowsByKind = `
		SELECT kind, COUNT(*)
		FROM catalog_rows
		GROUP BY kind
		ORDER BY kind`
)
