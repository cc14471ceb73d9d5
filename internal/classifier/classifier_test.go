package classifier

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SmartDesk/internal/normalize"
)

func sampleFeatures() normalize.Features {
	var t normalize.Tensor
	t[0] = 1
	t[5] = 0.5
	return t.Features()
}

func TestClientPredictProba(t *testing.T) {
	want := []float64{0.01, 0.02, 0.03, 0.04, 0.5, 0.1, 0.1, 0.1, 0.05, 0.05}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/predict_proba", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req PredictRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) || !assert.Len(t, req.Data, 1) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		assert.Len(t, req.Columns, normalize.Size*normalize.Size)
		assert.Equal(t, 1.0, req.Data[0][0])
		assert.Equal(t, 0.5, req.Data[0][5])

		_ = json.NewEncoder(w).Encode(PredictResponse{Probabilities: want})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/v1", time.Second, srv.Client())
	require.NoError(t, err)

	got, err := c.PredictProba(context.Background(), sampleFeatures())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
		is      error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			},
			wantErr: "status code: 503",
		},
		{
			name: "short vector",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"probabilities":[1,0]}`))
			},
			is: ErrBadVector,
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantErr: "decode response body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c, err := NewClient(srv.URL, time.Second, nil)
			require.NoError(t, err)

			_, err = c.PredictProba(context.Background(), sampleFeatures())
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(srv.URL, 20*time.Millisecond, nil)
	require.NoError(t, err)

	_, err = c.PredictProba(context.Background(), sampleFeatures())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("localhost:8000", time.Second, nil)
	assert.Error(t, err)
	_, err = NewClient("://", time.Second, nil)
	assert.Error(t, err)
}

func linearFixture(hot int) LinearModel {
	const inputs = normalize.Size * normalize.Size
	m := LinearModel{
		Weights: make([][]float64, Classes),
		Bias:    make([]float64, Classes),
	}
	for k := range m.Weights {
		m.Weights[k] = make([]float64, inputs)
	}
	m.Weights[hot][0] = 10
	return m
}

func TestLinearModelRoundTrip(t *testing.T) {
	m := linearFixture(7)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var zipped bytes.Buffer
	zw := gzip.NewWriter(&zipped)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	for name, r := range map[string]*bytes.Reader{
		"plain": bytes.NewReader(data),
		"gzip":  bytes.NewReader(zipped.Bytes()),
	} {
		t.Run(name, func(t *testing.T) {
			model, err := ReadLinearModel(r)
			require.NoError(t, err)

			probs, err := model.PredictProba(context.Background(), sampleFeatures())
			require.NoError(t, err)
			require.Len(t, probs, Classes)

			var sum float64
			best := 0
			for k, p := range probs {
				sum += p
				if p > probs[best] {
					best = k
				}
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
			assert.Equal(t, 7, best)
		})
	}
}

func TestLinearModelRejectsBadShape(t *testing.T) {
	m := linearFixture(0)
	m.Weights[3] = m.Weights[3][:10]
	data, err := json.Marshal(m)
	require.NoError(t, err)

	_, err = ReadLinearModel(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrBadModel)

	m = linearFixture(0)
	m.Features = normalize.FeatureNames()
	m.Features[0], m.Features[1] = m.Features[1], m.Features[0]
	data, err = json.Marshal(m)
	require.NoError(t, err)

	_, err = ReadLinearModel(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrBadModel)

	_, err = ReadLinearModel(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestFuncAdapter(t *testing.T) {
	var c Classifier = Func(func(ctx context.Context, f normalize.Features) ([]float64, error) {
		return make([]float64, Classes), nil
	})
	probs, err := c.PredictProba(context.Background(), sampleFeatures())
	require.NoError(t, err)
	assert.Len(t, probs, Classes)
}
