package classifier

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"SmartDesk/internal/normalize"
)

var ErrBadModel = errors.New("classifier: malformed model artifact")

// LinearModel is a multinomial logistic regression over the pixel features.
type LinearModel struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
	// Features optionally names the columns Weights were fitted on. When
	// present it must match normalize.FeatureNames.
	Features []string `json:"features,omitempty"`
}

// LoadLinearModel reads a JSON artifact, gzip-compressed or plain.
func LoadLinearModel(path string) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	return ReadLinearModel(f)
}

func ReadLinearModel(r io.Reader) (*LinearModel, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	var m LinearModel
	if err := json.NewDecoder(src).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *LinearModel) validate() error {
	const inputs = normalize.Size * normalize.Size
	if len(m.Weights) != Classes || len(m.Bias) != Classes {
		return fmt.Errorf("%w: want %d classes, got %d weight rows and %d biases",
			ErrBadModel, Classes, len(m.Weights), len(m.Bias))
	}
	for i, row := range m.Weights {
		if len(row) != inputs {
			return fmt.Errorf("%w: class %d has %d weights, want %d", ErrBadModel, i, len(row), inputs)
		}
	}
	if m.Features != nil {
		names := normalize.FeatureNames()
		if len(m.Features) != len(names) {
			return fmt.Errorf("%w: %d feature names, want %d", ErrBadModel, len(m.Features), len(names))
		}
		for i := range names {
			if m.Features[i] != names[i] {
				return fmt.Errorf("%w: feature %d is %q, want %q", ErrBadModel, i, m.Features[i], names[i])
			}
		}
	}
	return nil
}

func (m *LinearModel) PredictProba(ctx context.Context, features normalize.Features) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(features.Values) != len(m.Weights[0]) {
		return nil, fmt.Errorf("%w: %d features, model wants %d", ErrBadVector, len(features.Values), len(m.Weights[0]))
	}

	logits := make([]float64, Classes)
	top := math.Inf(-1)
	for k, row := range m.Weights {
		z := m.Bias[k]
		for i, w := range row {
			z += w * features.Values[i]
		}
		logits[k] = z
		top = max(top, z)
	}

	var sum float64
	for k, z := range logits {
		logits[k] = math.Exp(z - top)
		sum += logits[k]
	}
	for k := range logits {
		logits[k] /= sum
	}
	return logits, nil
}
