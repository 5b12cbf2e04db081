package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-compare/internal/api/handlers"
	"github.com/donaldgifford/laptop-compare/internal/engine"
	"github.com/donaldgifford/laptop-compare/pkg/market"
)

func TestGetScoresInput_Selection(t *testing.T) {
	t.Parallel()

	in := handlers.GetScoresInput{CPU: 0, Display: -1, GPU: 2, RAM: -1, Storage: -1}
	sel := in.Selection()

	require.NotNil(t, sel.Processor)
	assert.Equal(t, 0, *sel.Processor)
	assert.Nil(t, sel.Display)
	require.NotNil(t, sel.GPU)
	assert.Equal(t, 2, *sel.GPU)
	assert.Nil(t, sel.RAM)
	assert.Nil(t, sel.Storage)
}

func TestGetScores(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(newEngine(t, true)))

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantCPUName string
	}{
		{
			name:        "base configuration",
			path:        "/api/v1/products/t14-gen5/scores",
			wantStatus:  http.StatusOK,
			wantCPUName: "Core Ultra 7 155H",
		},
		{
			name:        "processor option",
			path:        "/api/v1/products/t14-gen5/scores?cpu=0",
			wantStatus:  http.StatusOK,
			wantCPUName: "Core Ultra 5 125U",
		},
		{
			name:        "out of range option keeps base",
			path:        "/api/v1/products/t14-gen5/scores?cpu=7",
			wantStatus:  http.StatusOK,
			wantCPUName: "Core Ultra 7 155H",
		},
		{
			name:       "negative option rejected",
			path:       "/api/v1/products/t14-gen5/scores?cpu=-2",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown product",
			path:       "/api/v1/products/x1-carbon-gen99/scores",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var r engine.ProductReport
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &r))
			assert.Equal(t, tt.wantCPUName, r.Product.Processor.Name)
			assert.Len(t, r.Details, 6)
			require.NotNil(t, r.Value)
			assert.Equal(t, market.SignalBuyNow, r.Signal.Signal)
		})
	}
}

func TestGetScores_NotLoaded(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(newEngine(t, false)))

	resp := api.Get("/api/v1/products/t14-gen5/scores")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestGetSignal(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(newEngine(t, true)))

	resp := api.Get("/api/v1/products/t14s-gen5/signal")
	require.Equal(t, http.StatusOK, resp.Code)

	var d market.Decision
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &d))
	assert.Equal(t, market.SignalHold, d.Signal)
	assert.Equal(t, "Hold", d.Label)
	assert.Equal(t, "Black Friday", d.UpcomingSale)
	require.NotNil(t, d.SaleStart)

	resp = api.Get("/api/v1/products/missing/signal")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "product not found: missing")
}
