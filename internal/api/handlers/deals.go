package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// DealService lists deals that need re-verification.
type DealService interface {
	StaleDeals(ctx context.Context, days int) ([]domain.Deal, error)
	StaleDays() int
}

// DealsHandler serves deal endpoints.
type DealsHandler struct {
	svc DealService
}

// NewDealsHandler creates a new DealsHandler.
func NewDealsHandler(svc DealService) *DealsHandler {
	return &DealsHandler{svc: svc}
}

// ListStaleDealsInput sets the staleness threshold.
type ListStaleDealsInput struct {
	Days int `query:"days" minimum:"0" doc:"Days since last verification; 0 uses the configured default"`
}

// ListStaleDealsOutput is the response for the stale deals endpoint.
type ListStaleDealsOutput struct {
	Body struct {
		ThresholdDays int           `json:"threshold_days"`
		Count         int           `json:"count"`
		Deals         []domain.Deal `json:"deals"`
	}
}

// ListStaleDeals returns deals never verified or verified too long ago.
func (h *DealsHandler) ListStaleDeals(
	ctx context.Context,
	input *ListStaleDealsInput,
) (*ListStaleDealsOutput, error) {
	deals, err := h.svc.StaleDeals(ctx, input.Days)
	if err != nil {
		return nil, engineError(err, "failed to list stale deals")
	}

	resp := &ListStaleDealsOutput{}
	resp.Body.ThresholdDays = input.Days
	if resp.Body.ThresholdDays <= 0 {
		resp.Body.ThresholdDays = h.svc.StaleDays()
	}
	resp.Body.Count = len(deals)
	resp.Body.Deals = deals
	return resp, nil
}

// RegisterDealRoutes registers deal endpoints with the Huma API.
func RegisterDealRoutes(api huma.API, h *DealsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-stale-deals",
		Method:      http.MethodGet,
		Path:        "/api/v1/deals/stale",
		Summary:     "List stale deals",
		Description: "Returns deals that were never verified or were last verified " +
			"more than the threshold number of days ago.",
		Tags:   []string{"market"},
		Errors: []int{http.StatusServiceUnavailable},
	}, h.ListStaleDeals)
}
