package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"SmartDesk/internal/normalize"
)

var ErrBadVector = errors.New("classifier: unexpected probability vector")

// Client talks to a model server exposing POST /predict_proba.
type Client struct {
	url     *url.URL
	client  *http.Client
	timeout time.Duration
}

func NewClient(_url string, timeout time.Duration, client *http.Client) (*Client, error) {
	u, err := url.Parse(_url)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid url: %q needs scheme and host", _url)
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &Client{url: u, client: client, timeout: timeout}, nil
}

func (c *Client) PredictProba(ctx context.Context, features normalize.Features) ([]float64, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(PredictRequest{
		Columns: features.Names,
		Data:    [][]float64{features.Values},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	_url := c.url.JoinPath("/predict_proba").String()
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, _url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		resp, _ := io.ReadAll(response.Body)
		return nil, fmt.Errorf("server response status code: %d, body: %s", response.StatusCode, resp)
	}

	var resp PredictResponse
	if err = json.NewDecoder(response.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	if len(resp.Probabilities) != Classes {
		return nil, fmt.Errorf("%w: got %d values", ErrBadVector, len(resp.Probabilities))
	}

	return resp.Probabilities, nil
}
