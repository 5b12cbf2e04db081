package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

func TestEncodeDecodeDocs(t *testing.T) {
	t.Parallel()

	raw := &Raw{
		Products:      []*domain.Product{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		CPUBenchmarks: []domain.CPUBenchmark{{Name: "cpu-1", Composite: 70}},
		Deals:         []domain.Deal{{ID: "d1", ProductID: "a", Price: 999}},
	}

	docs, err := encodeDocs(raw)
	require.NoError(t, err)
	assert.Len(t, docs[KindProducts], 2)
	assert.Len(t, docs[KindCPUBenchmarks], 1)
	assert.Empty(t, docs[KindEditorial])

	back, err := decodeDocs(docs)
	require.NoError(t, err)
	require.Len(t, back.Products, 2)
	assert.Equal(t, "b", back.Products[1].ID)
	assert.Equal(t, 70, back.CPUBenchmarks[0].Composite)
	assert.InDelta(t, 999.0, back.Deals[0].Price, 0.001)
}

func TestDecodeDocs_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := decodeDocs(map[Kind][]json.RawMessage{
		"widgets": {json.RawMessage(`{"id":"w"}`)},
	})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestRowKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "id wins", doc: `{"id":"obs-1","product_id":"t14"}`, want: "obs-1"},
		{name: "product id", doc: `{"product_id":"t14","msrp":1000}`, want: "t14"},
		{name: "name", doc: `{"name":"Arc Graphics","score":30}`, want: "Arc Graphics"},
		{name: "null row", doc: `null`, want: ""},
		{name: "not an object", doc: `[1,2]`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rowKey(json.RawMessage(tt.doc)))
		})
	}
}

func TestImportResult_Total(t *testing.T) {
	t.Parallel()

	res := ImportResult{Rows: map[Kind]int{KindProducts: 4, KindDeals: 2}}
	assert.Equal(t, 6, res.Total())
	assert.Equal(t, 0, ImportResult{}.Total())
}

func TestMigrationVersions(t *testing.T) {
	t.Parallel()

	versions, err := migrationVersions()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_catalog_rows.sql", "002_catalog_imports.sql"}, versions)
}
