package modelserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"EstatePulse/internal/domain/models"
	domsvc "EstatePulse/internal/domain/service"
	xhttp "EstatePulse/pkg/http"
)

// Client talks to the model-serving backend over REST. It reports typed
// failures and never substitutes results itself; that policy belongs to
// the caller.
type Client struct {
	baseURL  string
	attempts int
	client   *xhttp.Client
}

// New creates a model-server client.
func New(baseURL string, timeout time.Duration, retryAttempts int) *Client {
	if retryAttempts < 1 {
		retryAttempts = 1
	}
	return &Client{
		baseURL:  baseURL,
		attempts: retryAttempts,
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// errorBody is the backend's non-2xx envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// Predict posts the request and decodes the backend's result.
func (c *Client) Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error) {
	var result models.PredictionResult
	if err := c.postJSON(ctx, "/api/predict", req, &result); err != nil {
		return nil, err
	}
	result.Source = models.SourceBackend
	return &result, nil
}

// Locations fetches the known location names, preserving backend order.
func (c *Client) Locations(ctx context.Context) ([]models.Location, error) {
	resp, err := c.client.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/api/locations",
	})
	if err != nil {
		return nil, networkErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, protocolErr(resp.StatusCode, readDetail(resp.Body))
	}

	var locations []models.Location
	if err := json.NewDecoder(resp.Body).Decode(&locations); err != nil {
		return nil, parseErr(err)
	}
	return locations, nil
}

// postJSON posts payload to path and decodes the JSON response into dest,
// retrying transient failures. Protocol failures with a 4xx status are
// not retried; the request will not get better.
func (c *Client) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	var last error
	for i := 1; i <= c.attempts; i++ {
		last = c.doPostJSON(ctx, path, payload, dest)
		if last == nil {
			return nil
		}
		if fe, ok := last.(*FetchError); ok && fe.Kind == FailureProtocol && fe.Status < 500 {
			return last
		}
		select {
		case <-time.After(time.Duration(i) * 50 * time.Millisecond):
		case <-ctx.Done():
			return networkErr(ctx.Err())
		}
	}
	return last
}

func (c *Client) doPostJSON(ctx context.Context, path string, payload, dest interface{}) error {
	resp, err := c.client.SendRequest(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.baseURL + path,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    payload,
	})
	if err != nil {
		return networkErr(fmt.Errorf("post %s: %w", path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return protocolErr(resp.StatusCode, readDetail(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return parseErr(fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return eb.Detail
	}
	return string(body)
}

var _ domsvc.ModelClient = (*Client)(nil)
