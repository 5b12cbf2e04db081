package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoOpNotifier_SendValidationSummary(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := n.SendValidationSummary(context.Background(), testSummary(3, 2))
	require.NoError(t, err)
}

func TestNoOpNotifier_SendStaleDeals(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(nil)
	err := n.SendStaleDeals(context.Background(), &StaleDealsPayload{Threshold: 14})
	require.NoError(t, err)
}

// compile-time interface check.
var _ Notifier = (*NoOpNotifier)(nil)
