package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-compare/internal/api/handlers"
	"github.com/donaldgifford/laptop-compare/internal/catalog/mocks"
	"github.com/donaldgifford/laptop-compare/internal/engine"
	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(engine.New(mocks.NewMockSource(t), engine.WithLogger(quietLogger())))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Healthz(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		loaded     bool
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "returns 200 when loaded and source reachable",
			loaded:     true,
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready"}`,
		},
		{
			name:       "returns 503 when source ping fails",
			loaded:     true,
			pingErr:    errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable"}`,
		},
		{
			name:       "returns 503 before the first refresh",
			loaded:     false,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"loading"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := mocks.NewMockSource(t)
			eng := engine.New(src, engine.WithLogger(quietLogger()))
			if tt.loaded {
				src.EXPECT().Load(mock.Anything).Return(&domain.Catalog{}, nil)
				src.EXPECT().Ping(mock.Anything).Return(tt.pingErr)
				_, err := eng.Refresh(t.Context())
				require.NoError(t, err)
			}

			h := handlers.NewHealthHandler(eng)

			e := echo.New()
			handlers.RegisterHealthRoutes(e, h)
			req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
