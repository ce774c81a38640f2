package modelserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EstatePulse/internal/domain/models"
)

func testRequest() *models.PredictionRequest {
	return &models.PredictionRequest{Location: "Koramangala", TotalSqft: 1500, BHK: 3}
}

func TestPredictSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/predict", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"location": "Koramangala",
			"coordinates": {"latitude": 12.9349, "longitude": 77.6175},
			"predicted_price_per_sqft": 7100,
			"total_estimated_price": 10650000,
			"total_estimated_price_formatted": "₹ 106.50 Lakh",
			"confidence_interval": {"lower": 6035, "upper": 8165},
			"nearby_comparables": []
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second, 1)
	res, err := c.Predict(context.Background(), testRequest())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 7100.0, res.PredictedPricePerSqft)
	assert.Equal(t, models.SourceBackend, res.Source)
}

func TestPredictProtocolFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "model not loaded"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second, 1)
	_, err := c.Predict(context.Background(), testRequest())
	require.Error(t, err)

	fe, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Equal(t, FailureProtocol, fe.Kind)
	assert.Equal(t, http.StatusInternalServerError, fe.Status)
	assert.Equal(t, "model not loaded", fe.Detail)
}

func TestPredictNoRetryOn4xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "bad payload"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second, 3)
	_, err := c.Predict(context.Background(), testRequest())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestPredictParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second, 1)
	_, err := c.Predict(context.Background(), testRequest())
	require.Error(t, err)

	fe, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Equal(t, FailureParse, fe.Kind)
}

func TestPredictNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second, 1)
	_, err := c.Predict(context.Background(), testRequest())
	require.Error(t, err)

	fe, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Equal(t, FailureNetwork, fe.Kind)
}

func TestLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/locations", r.URL.Path)
		_, _ = w.Write([]byte(`[{"name": "Whitefield"}, {"name": "Koramangala"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, 1)
	locs, err := c.Locations(context.Background())
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "Whitefield", locs[0].Name)
}
