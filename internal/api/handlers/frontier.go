package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-compare/internal/engine"
	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// FrontierService computes the price/performance frontier.
type FrontierService interface {
	Frontier(ctx context.Context, lineup domain.Lineup) (*engine.FrontierResult, error)
}

// FrontierHandler serves the efficiency frontier.
type FrontierHandler struct {
	svc FrontierService
}

// NewFrontierHandler creates a new FrontierHandler.
func NewFrontierHandler(svc FrontierService) *FrontierHandler {
	return &FrontierHandler{svc: svc}
}

// GetFrontierInput optionally restricts the frontier to a lineup.
type GetFrontierInput struct {
	Lineup string `query:"lineup" enum:"ThinkPad,IdeaPad Pro,Legion" doc:"Only include this lineup"`
}

// GetFrontierOutput is the response for the frontier endpoint.
type GetFrontierOutput struct {
	Body *engine.FrontierResult
}

// GetFrontier returns every priced product and the efficient subset.
func (h *FrontierHandler) GetFrontier(
	ctx context.Context,
	input *GetFrontierInput,
) (*GetFrontierOutput, error) {
	res, err := h.svc.Frontier(ctx, domain.Lineup(input.Lineup))
	if err != nil {
		return nil, engineError(err, "failed to compute frontier")
	}
	return &GetFrontierOutput{Body: res}, nil
}

// RegisterFrontierRoutes registers the frontier endpoint with the Huma API.
func RegisterFrontierRoutes(api huma.API, h *FrontierHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-frontier",
		Method:      http.MethodGet,
		Path:        "/api/v1/frontier",
		Summary:     "Get the efficiency frontier",
		Description: "Plots products by lowest observed price and composite score " +
			"and marks those no cheaper product matches.",
		Tags:   []string{"market"},
		Errors: []int{http.StatusServiceUnavailable},
	}, h.GetFrontier)
}
