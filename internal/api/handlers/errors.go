package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-compare/internal/engine"
)

// engineError maps engine sentinels to HTTP errors.
func engineError(err error, msg string) error {
	switch {
	case errors.Is(err, engine.ErrProductNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, engine.ErrNoSnapshot):
		return huma.Error503ServiceUnavailable(err.Error())
	default:
		return huma.Error500InternalServerError(msg + ": " + err.Error())
	}
}
