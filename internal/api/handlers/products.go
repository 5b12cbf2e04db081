package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-compare/internal/engine"
	"github.com/donaldgifford/laptop-compare/pkg/market"
	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// ProductService scores products and computes buy signals.
type ProductService interface {
	ProductReport(ctx context.Context, id string, sel domain.Selection) (*engine.ProductReport, error)
	Signal(ctx context.Context, id string) (market.Decision, error)
}

// ProductsHandler serves per-product analytics.
type ProductsHandler struct {
	svc ProductService
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(svc ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// GetScoresInput selects a product and its build-to-order options. An
// option index of -1 keeps the base configuration.
type GetScoresInput struct {
	ID      string `path:"id"       doc:"Product id"`
	CPU     int    `query:"cpu"     default:"-1" minimum:"-1" doc:"Processor option index"`
	Display int    `query:"display" default:"-1" minimum:"-1" doc:"Display option index"`
	GPU     int    `query:"gpu"     default:"-1" minimum:"-1" doc:"GPU option index"`
	RAM     int    `query:"ram"     default:"-1" minimum:"-1" doc:"RAM option index"`
	Storage int    `query:"storage" default:"-1" minimum:"-1" doc:"Storage option index"`
}

// Selection converts the option indexes into a domain.Selection.
func (in *GetScoresInput) Selection() domain.Selection {
	return domain.Selection{
		Processor: optionIndex(in.CPU),
		Display:   optionIndex(in.Display),
		GPU:       optionIndex(in.GPU),
		RAM:       optionIndex(in.RAM),
		Storage:   optionIndex(in.Storage),
	}
}

func optionIndex(i int) *int {
	if i < 0 {
		return nil
	}
	return &i
}

// GetScoresOutput is the response for the scores endpoint.
type GetScoresOutput struct {
	Body *engine.ProductReport
}

// GetScores returns every score for one configured product.
func (h *ProductsHandler) GetScores(
	ctx context.Context,
	input *GetScoresInput,
) (*GetScoresOutput, error) {
	r, err := h.svc.ProductReport(ctx, input.ID, input.Selection())
	if err != nil {
		return nil, engineError(err, "failed to score product")
	}
	return &GetScoresOutput{Body: r}, nil
}

// GetSignalInput identifies a product.
type GetSignalInput struct {
	ID string `path:"id" doc:"Product id"`
}

// GetSignalOutput is the response for the signal endpoint.
type GetSignalOutput struct {
	Body market.Decision
}

// GetSignal returns the buy signal for a product.
func (h *ProductsHandler) GetSignal(
	ctx context.Context,
	input *GetSignalInput,
) (*GetSignalOutput, error) {
	d, err := h.svc.Signal(ctx, input.ID)
	if err != nil {
		return nil, engineError(err, "failed to compute signal")
	}
	return &GetSignalOutput{Body: d}, nil
}

// RegisterProductRoutes registers product endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-product-scores",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}/scores",
		Summary:     "Score a product",
		Description: "Returns dimension scores, composite, value, percentiles, " +
			"benchmark breakdowns and use-case verdicts for a configured product.",
		Tags:   []string{"products"},
		Errors: []int{http.StatusNotFound, http.StatusServiceUnavailable},
	}, h.GetScores)

	huma.Register(api, huma.Operation{
		OperationID: "get-product-signal",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}/signal",
		Summary:     "Get a buy signal",
		Description: "Recommends buying now or waiting based on price baselines and upcoming sales.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusServiceUnavailable},
	}, h.GetSignal)
}
