package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestImportQuery_ToSQL(t *testing.T) {
	t.Parallel()

	since := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    ImportQuery
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "defaults",
			query:   ImportQuery{},
			wantSQL: "SELECT id, row_count, imported_at FROM catalog_imports ORDER BY imported_at DESC, id LIMIT 20",
		},
		{
			name:     "since",
			query:    ImportQuery{Since: &since, Limit: 5},
			wantSQL:  "SELECT id, row_count, imported_at FROM catalog_imports WHERE imported_at >= $1 ORDER BY imported_at DESC, id LIMIT 5",
			wantArgs: []any{since},
		},
		{
			name:     "all filters",
			query:    ImportQuery{Since: &since, Until: &until, MinRows: ptr(10)},
			wantSQL:  "SELECT id, row_count, imported_at FROM catalog_imports WHERE imported_at >= $1 AND imported_at < $2 AND row_count >= $3 ORDER BY imported_at DESC, id LIMIT 20",
			wantArgs: []any{since, until, 10},
		},
		{
			name:    "limit clamped",
			query:   ImportQuery{Limit: 10_000},
			wantSQL: "SELECT id, row_count, imported_at FROM catalog_imports ORDER BY imported_at DESC, id LIMIT 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sql, args, err := tt.query.ToSQL()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}
