package predict

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"SmartDesk/internal/classifier"
	"SmartDesk/internal/logging"
	"SmartDesk/internal/normalize"
)

// AnimationSteps is both the number of animation ticks and the factor the
// probabilities are divided by before animating.
const AnimationSteps = 10

// Result is the outcome of one stroke-end prediction.
type Result struct {
	// Empty is set when the surface holds no ink; Scaled is then all zero.
	Empty bool
	Digit int
	// Probabilities is the raw classifier output.
	Probabilities []float64
	// Scaled is Probabilities divided by AnimationSteps.
	Scaled  []float64
	Elapsed time.Duration
}

type Predictor struct {
	normalizer *normalize.Normalizer
	classifier classifier.Classifier
}

func New(n *normalize.Normalizer, c classifier.Classifier) *Predictor {
	return &Predictor{normalizer: n, classifier: c}
}

// Predict normalizes surface and classifies it. Classifier failures are
// wrapped and returned without retry; surface is never written to.
func (p *Predictor) Predict(ctx context.Context, surface image.Image) (Result, error) {
	start := time.Now()

	tensor, ok := p.normalizer.Normalize(surface)
	if !ok {
		return Result{
			Empty:         true,
			Probabilities: make([]float64, classifier.Classes),
			Scaled:        make([]float64, classifier.Classes),
		}, nil
	}

	probs, err := p.classifier.PredictProba(ctx, tensor.Features())
	if err != nil {
		return Result{}, fmt.Errorf("predict digit: %w", err)
	}
	if len(probs) != classifier.Classes {
		return Result{}, fmt.Errorf("predict digit: %w: got %d values", classifier.ErrBadVector, len(probs))
	}

	res := Result{
		Digit:         argmax(probs),
		Probabilities: append([]float64(nil), probs...),
		Scaled:        make([]float64, len(probs)),
		Elapsed:       time.Since(start),
	}
	for i, v := range probs {
		res.Scaled[i] = v / AnimationSteps
	}

	logging.Logger.Debug("digit predicted",
		zap.Int("digit", res.Digit),
		zap.Float64("probability", probs[res.Digit]),
		zap.Duration("elapsed", res.Elapsed))

	return res, nil
}

func argmax(v []float64) int {
	best := 0
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
