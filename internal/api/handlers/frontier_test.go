package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-compare/internal/api/handlers"
	"github.com/donaldgifford/laptop-compare/internal/engine"
)

func TestGetFrontier(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterFrontierRoutes(api, handlers.NewFrontierHandler(newEngine(t, true)))

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantPoints int
	}{
		{name: "all lineups", query: "", wantStatus: http.StatusOK, wantPoints: 4},
		{name: "thinkpad only", query: "?lineup=ThinkPad", wantStatus: http.StatusOK, wantPoints: 3},
		{
			name:       "lineup with no products",
			query:      "?lineup=" + url.QueryEscape("IdeaPad Pro"),
			wantStatus: http.StatusOK,
			wantPoints: 0,
		},
		{name: "unknown lineup", query: "?lineup=Yoga", wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Get("/api/v1/frontier" + tt.query)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var res engine.FrontierResult
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
			assert.Len(t, res.Points, tt.wantPoints)
			assert.LessOrEqual(t, len(res.Frontier), len(res.Points))
			assert.NotContains(t, resp.Body.String(), `"points":null`)
		})
	}
}

func TestGetFrontier_NotLoaded(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterFrontierRoutes(api, handlers.NewFrontierHandler(newEngine(t, false)))

	resp := api.Get("/api/v1/frontier")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
