package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-compare/internal/catalog"
	"github.com/donaldgifford/laptop-compare/internal/engine"
)

const testdataDir = "../../catalog/testdata/catalog"

var fixedNow = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newEngine returns an engine over the test catalog. It is refreshed when
// load is true.
func newEngine(t *testing.T, load bool) *engine.Engine {
	t.Helper()

	eng := engine.New(
		catalog.NewFileSource(testdataDir, catalog.WithFileLogger(quietLogger())),
		engine.WithLogger(quietLogger()),
		engine.WithClock(func() time.Time { return fixedNow }),
	)
	if load {
		_, err := eng.Refresh(context.Background())
		require.NoError(t, err)
	}
	return eng
}
