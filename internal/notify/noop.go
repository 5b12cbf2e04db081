package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded reports. It is used
// when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards reports with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &NoOpNotifier{log: log}
}

// SendValidationSummary logs and discards a validation summary.
func (n *NoOpNotifier) SendValidationSummary(_ context.Context, summary *SummaryPayload) error {
	n.log.Debug("validation summary discarded (no backend configured)",
		"run_id", summary.RunID,
		"errors", len(summary.Result.Errors),
		"warnings", len(summary.Result.Warnings),
	)
	return nil
}

// SendStaleDeals logs and discards a stale deal report.
func (n *NoOpNotifier) SendStaleDeals(_ context.Context, stale *StaleDealsPayload) error {
	n.log.Debug("stale deal report discarded (no backend configured)",
		"count", len(stale.Deals),
		"threshold_days", stale.Threshold,
	)
	return nil
}
