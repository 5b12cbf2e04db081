// Package notify defines the notification interface and implementations
// for catalog health reports.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
	"github.com/donaldgifford/laptop-compare/pkg/validate"
)

// SummaryPayload contains the data needed to report one validation run.
type SummaryPayload struct {
	RunID    uuid.UUID
	Source   string
	Products int
	Result   validate.Result
	LoadedAt time.Time
}

// StaleDealsPayload lists deals whose verification has lapsed.
type StaleDealsPayload struct {
	Deals     []domain.Deal
	Threshold int
	Now       time.Time
}

// Notifier defines the interface for sending catalog reports.
type Notifier interface {
	SendValidationSummary(ctx context.Context, summary *SummaryPayload) error
	SendStaleDeals(ctx context.Context, stale *StaleDealsPayload) error
}
