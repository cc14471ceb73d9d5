package classifier

import (
	"context"

	"SmartDesk/internal/normalize"
)

// Classes is the number of digit classes.
const Classes = 10

// Classifier represents the pre-trained digit model.
type Classifier interface {
	// PredictProba returns one probability per digit class for a single
	// record of features.
	PredictProba(ctx context.Context, features normalize.Features) ([]float64, error)
}

// Func adapts an ordinary function to Classifier.
type Func func(ctx context.Context, features normalize.Features) ([]float64, error)

func (f Func) PredictProba(ctx context.Context, features normalize.Features) ([]float64, error) {
	return f(ctx, features)
}

// PredictRequest is a one-row frame in "split" orientation.
type PredictRequest struct {
	Columns []string    `json:"columns"`
	Data    [][]float64 `json:"data"`
}

type PredictResponse struct {
	Probabilities []float64 `json:"probabilities"`
}
