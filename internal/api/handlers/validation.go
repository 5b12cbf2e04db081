package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-compare/internal/engine"
	"github.com/donaldgifford/laptop-compare/pkg/validate"
)

// ValidationService exposes the current validation result and triggers
// a catalog reload.
type ValidationService interface {
	Snapshot() (*engine.Snapshot, error)
	Refresh(ctx context.Context) (*engine.Snapshot, error)
}

// ValidationHandler serves validation reports.
type ValidationHandler struct {
	svc ValidationService
}

// NewValidationHandler creates a new ValidationHandler.
func NewValidationHandler(svc ValidationService) *ValidationHandler {
	return &ValidationHandler{svc: svc}
}

// IssueCounts is the number of issues per level.
type IssueCounts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// LevelGroups is one level's issues grouped by category.
type LevelGroups struct {
	Level  validate.Level   `json:"level"`
	Groups []validate.Group `json:"groups"`
}

// ValidationReport is a validation run rendered for the API.
type ValidationReport struct {
	RunID      string        `json:"run_id"      doc:"Refresh run id"`
	LoadedAt   time.Time     `json:"loaded_at"`
	DurationMS int64         `json:"duration_ms"`
	Products   int           `json:"products"`
	Passed     bool          `json:"passed"      doc:"True when there are no error-level issues"`
	Counts     IssueCounts   `json:"counts"`
	Levels     []LevelGroups `json:"levels"`
}

// GetValidationInput filters the report to one level.
type GetValidationInput struct {
	Level string `query:"level" enum:"error,warning,info" doc:"Only include this level"`
}

// ValidationOutput is the response for validation endpoints.
type ValidationOutput struct {
	Body ValidationReport
}

// GetValidation returns the report of the latest refresh.
func (h *ValidationHandler) GetValidation(
	_ context.Context,
	input *GetValidationInput,
) (*ValidationOutput, error) {
	snap, err := h.svc.Snapshot()
	if err != nil {
		return nil, engineError(err, "failed to read validation")
	}
	return &ValidationOutput{Body: newValidationReport(snap, validate.Level(input.Level))}, nil
}

// RefreshValidation reloads and revalidates the catalog.
func (h *ValidationHandler) RefreshValidation(
	ctx context.Context,
	_ *struct{},
) (*ValidationOutput, error) {
	snap, err := h.svc.Refresh(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("catalog refresh failed: " + err.Error())
	}
	return &ValidationOutput{Body: newValidationReport(snap, "")}, nil
}

func newValidationReport(s *engine.Snapshot, only validate.Level) ValidationReport {
	res := s.Validation
	r := ValidationReport{
		RunID:      s.RunID.String(),
		LoadedAt:   s.LoadedAt,
		DurationMS: s.Duration.Milliseconds(),
		Products:   len(s.Catalog.Products),
		Passed:     !res.HasErrors(),
		Counts: IssueCounts{
			Errors:   len(res.Errors),
			Warnings: len(res.Warnings),
			Info:     len(res.Info),
		},
		Levels: []LevelGroups{},
	}

	for _, lv := range []struct {
		level  validate.Level
		issues []validate.Issue
	}{
		{validate.LevelError, res.Errors},
		{validate.LevelWarning, res.Warnings},
		{validate.LevelInfo, res.Info},
	} {
		if only != "" && only != lv.level {
			continue
		}
		groups := validate.GroupByCategory(lv.issues)
		if groups == nil {
			groups = []validate.Group{}
		}
		r.Levels = append(r.Levels, LevelGroups{Level: lv.level, Groups: groups})
	}
	return r
}

// RegisterValidationRoutes registers validation endpoints with the Huma API.
func RegisterValidationRoutes(api huma.API, h *ValidationHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-validation",
		Method:      http.MethodGet,
		Path:        "/api/v1/validation",
		Summary:     "Get the catalog validation report",
		Description: "Returns the issues found by the latest refresh, grouped by level and category.",
		Tags:        []string{"validation"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.GetValidation)

	huma.Register(api, huma.Operation{
		OperationID: "refresh-validation",
		Method:      http.MethodPost,
		Path:        "/api/v1/validation/refresh",
		Summary:     "Reload and revalidate the catalog",
		Description: "Loads the catalog from its source, validates it and publishes the new snapshot.",
		Tags:        []string{"validation"},
		Errors:      []int{http.StatusBadGateway},
	}, h.RefreshValidation)
}
