package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-compare/internal/api/handlers"
	"github.com/donaldgifford/laptop-compare/internal/catalog/mocks"
	"github.com/donaldgifford/laptop-compare/internal/engine"
	domain "github.com/donaldgifford/laptop-compare/pkg/types"
	"github.com/donaldgifford/laptop-compare/pkg/validate"
)

func decodeReport(t *testing.T, body []byte) handlers.ValidationReport {
	t.Helper()
	var r handlers.ValidationReport
	require.NoError(t, json.Unmarshal(body, &r))
	return r
}

func TestGetValidation_Success(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterValidationRoutes(api, handlers.NewValidationHandler(newEngine(t, true)))

	resp := api.Get("/api/v1/validation")
	require.Equal(t, http.StatusOK, resp.Code)

	r := decodeReport(t, resp.Body.Bytes())
	assert.True(t, r.Passed)
	assert.Equal(t, 4, r.Products)
	assert.Equal(t, handlers.IssueCounts{Errors: 0, Warnings: 0, Info: 10}, r.Counts)
	require.Len(t, r.Levels, 3)
	assert.Empty(t, r.Levels[0].Groups)

	info := r.Levels[2]
	assert.Equal(t, validate.LevelInfo, info.Level)
	require.Len(t, info.Groups, 3)
	assert.Equal(t, validate.CategoryModelCount, info.Groups[0].Category)
	assert.Equal(t, validate.CategoryBenchmarkCount, info.Groups[1].Category)
	assert.Equal(t, validate.CategoryCoverage, info.Groups[2].Category)
}

func TestGetValidation_LevelFilter(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterValidationRoutes(api, handlers.NewValidationHandler(newEngine(t, true)))

	resp := api.Get("/api/v1/validation?level=info")
	require.Equal(t, http.StatusOK, resp.Code)

	r := decodeReport(t, resp.Body.Bytes())
	require.Len(t, r.Levels, 1)
	assert.Equal(t, validate.LevelInfo, r.Levels[0].Level)

	resp = api.Get("/api/v1/validation?level=fatal")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestGetValidation_NotLoaded(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterValidationRoutes(api, handlers.NewValidationHandler(newEngine(t, false)))

	resp := api.Get("/api/v1/validation")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "catalog not loaded")
}

func TestRefreshValidation(t *testing.T) {
	t.Parallel()

	eng := newEngine(t, false)

	_, api := humatest.New(t)
	handlers.RegisterValidationRoutes(api, handlers.NewValidationHandler(eng))

	resp := api.Post("/api/v1/validation/refresh")
	require.Equal(t, http.StatusOK, resp.Code)

	r := decodeReport(t, resp.Body.Bytes())
	snap, err := eng.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, snap.RunID.String(), r.RunID)
}

func TestRefreshValidation_ReportsErrors(t *testing.T) {
	t.Parallel()

	src := mocks.NewMockSource(t)
	src.EXPECT().Load(mock.Anything).Return(&domain.Catalog{
		Products: []*domain.Product{{ID: "a", Name: "A"}, {ID: "a", Name: "A again"}},
	}, nil)

	_, api := humatest.New(t)
	handlers.RegisterValidationRoutes(api, handlers.NewValidationHandler(
		engine.New(src, engine.WithLogger(quietLogger())),
	))

	resp := api.Post("/api/v1/validation/refresh")
	require.Equal(t, http.StatusOK, resp.Code, "validation errors are data, not HTTP errors")

	r := decodeReport(t, resp.Body.Bytes())
	assert.False(t, r.Passed)
	assert.Positive(t, r.Counts.Errors)
	assert.Contains(t, resp.Body.String(), string(validate.CategoryDuplicateID))
}

func TestRefreshValidation_LoadFailure(t *testing.T) {
	t.Parallel()

	src := mocks.NewMockSource(t)
	src.EXPECT().Load(mock.Anything).Return(nil, errors.New("connection refused"))

	_, api := humatest.New(t)
	handlers.RegisterValidationRoutes(api, handlers.NewValidationHandler(
		engine.New(src, engine.WithLogger(quietLogger())),
	))

	resp := api.Post("/api/v1/validation/refresh")
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "connection refused")
}
