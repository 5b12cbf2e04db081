//go:build integration

package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/laptop-compare/internal/catalog"
)

func setupPostgres(t *testing.T) *catalog.PostgresSource {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("lcc_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := catalog.NewPostgresSource(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func TestPostgresSource_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresSource_MigrateIsIdempotent(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestPostgresSource_ImportAndLoad(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	raw, err := catalog.NewFileSource(testdataDir).LoadRaw(ctx)
	require.NoError(t, err)

	res, err := s.Import(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Rows[catalog.KindProducts])
	assert.Equal(t, 5, res.Rows[catalog.KindPriceObservations])

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, counts[catalog.KindProducts])

	cat, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cat.Products, 4)
	assert.Equal(t, "t14-gen5", cat.Products[0].ID, "position order is preserved")
	assert.Equal(t, 3, cat.CPUBenchmarks.Len())
	assert.Len(t, cat.SaleEvents, 3)

	base, ok := cat.PriceBaselines.Get("t14-gen5")
	require.True(t, ok)
	require.NotNil(t, base.HistoricalLowDate)
}

func TestPostgresSource_ImportReplaces(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	raw, err := catalog.NewFileSource(testdataDir).LoadRaw(ctx)
	require.NoError(t, err)

	_, err = s.Import(ctx, raw)
	require.NoError(t, err)

	raw.Products = raw.Products[:1]
	_, err = s.Import(ctx, raw)
	require.NoError(t, err)

	cat, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, cat.Products, 1)
}

func TestPostgresSource_Imports(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	raw, err := catalog.NewFileSource(testdataDir).LoadRaw(ctx)
	require.NoError(t, err)

	first, err := s.Import(ctx, raw)
	require.NoError(t, err)
	second, err := s.Import(ctx, &catalog.Raw{Products: raw.Products[:1]})
	require.NoError(t, err)

	all, err := s.Imports(ctx, catalog.ImportQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	ids := []string{all[0].ID.String(), all[1].ID.String()}
	assert.ElementsMatch(t, []string{first.ID.String(), second.ID.String()}, ids)

	minRows := first.Total()
	big, err := s.Imports(ctx, catalog.ImportQuery{MinRows: &minRows})
	require.NoError(t, err)
	require.Len(t, big, 1)
	assert.Equal(t, first.ID, big[0].ID)
	assert.Equal(t, first.Total(), big[0].RowCount)

	future := time.Now().Add(time.Hour)
	none, err := s.Imports(ctx, catalog.ImportQuery{Since: &future})
	require.NoError(t, err)
	assert.Empty(t, none)
}
