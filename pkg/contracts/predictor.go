package contracts

import (
	"context"

	"github.com/betpilot/tipster/pkg/models"
)

// Predictor is the opaque prediction collaborator (an LLM behind an API).
// The core's only obligation toward it is producing the odds-context text
// block deterministically; the call itself is outside this repository.
type Predictor interface {
	GeneratePrediction(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error)
}
