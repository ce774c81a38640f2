package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EstatePulse/internal/domain/models"
	"EstatePulse/internal/mapview"
	"EstatePulse/internal/render"
	"EstatePulse/internal/service/estimator"
	"EstatePulse/internal/service/modelserver"
	"EstatePulse/internal/service/ws"
	"EstatePulse/internal/usecase"
	"EstatePulse/pkg/config"
	xhttp "EstatePulse/pkg/http"
	"EstatePulse/pkg/logger"
)

type downClient struct{}

func (downClient) Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error) {
	return nil, &modelserver.FetchError{Kind: modelserver.FailureNetwork, Detail: "connection refused"}
}

func (downClient) Locations(ctx context.Context) ([]models.Location, error) {
	return nil, &modelserver.FetchError{Kind: modelserver.FailureNetwork}
}

type nopMetrics struct{}

func (nopMetrics) RecordPrediction(source, location string)       {}
func (nopMetrics) RecordFallback(reason string)                   {}
func (nopMetrics) RecordError(kind string)                        {}
func (nopMetrics) RecordLastPrice(location string, price float64) {}
func (nopMetrics) RecordLatency(op string, seconds float64)       {}

func newTestHandler(t *testing.T, rateLimited bool) (*PredictionHandler, *echo.Echo) {
	t.Helper()
	log := logger.NewNop()
	view := mapview.New()

	cfg := &config.Config{}
	cfg.RateLimit.Enabled = rateLimited
	cfg.RateLimit.Capacity = 1
	cfg.RateLimit.RefillPerSec = 0.001

	predictor := usecase.NewPredictor(downClient{}, estimator.NewMock(42), nil, nil, nil, 0, nopMetrics{}, log)
	loader := usecase.NewLocationLoader(downClient{}, nil, 0, nopMetrics{}, log)

	h := NewPredictionHandler(predictor, loader, render.NewRenderer(view), view, nil, ws.NewHub(log), cfg, log)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func doJSON(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, xhttp.APIResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope xhttp.APIResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	return rec, envelope
}

func TestPredictFallsBackTo200(t *testing.T) {
	_, e := newTestHandler(t, false)

	_, envelope := doJSON(e, http.MethodPost, "/api/predict",
		`{"location":"Koramangala","total_sqft":1500,"bhk":3,"bath":2}`)

	require.Equal(t, http.StatusOK, envelope.Status)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var resp PredictionResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, models.SourceMock, resp.Result.Source)
	assert.True(t, resp.Result.Success)
	assert.Len(t, resp.Result.NearbyComparables, 4)
	assert.Contains(t, resp.Summary.TotalPrice, "Lakh")
	assert.Len(t, resp.Summary.Comparables, 4)
}

func TestPredictValidation(t *testing.T) {
	_, e := newTestHandler(t, false)

	_, envelope := doJSON(e, http.MethodPost, "/api/predict", `{"total_sqft":0}`)

	assert.Equal(t, http.StatusBadRequest, envelope.Status)
}

func TestPredictRateLimited(t *testing.T) {
	_, e := newTestHandler(t, true)

	body := `{"location":"Hebbal","total_sqft":1200}`
	_, first := doJSON(e, http.MethodPost, "/api/predict", body)
	require.Equal(t, http.StatusOK, first.Status)

	_, second := doJSON(e, http.MethodPost, "/api/predict", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Status)
}

func TestLocationsFallback(t *testing.T) {
	_, e := newTestHandler(t, false)

	_, envelope := doJSON(e, http.MethodGet, "/api/locations", "")

	require.Equal(t, http.StatusOK, envelope.Status)
	data, _ := json.Marshal(envelope.Data)
	var list xhttp.ListDataResponse
	require.NoError(t, json.Unmarshal(data, &list))
	assert.Equal(t, int64(12), list.Total)
}

func TestMapLifecycle(t *testing.T) {
	_, e := newTestHandler(t, false)

	_, initial := doJSON(e, http.MethodGet, "/api/map", "")
	require.Equal(t, http.StatusOK, initial.Status)
	data, _ := json.Marshal(initial.Data)
	var st mapview.State
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, 11, st.Zoom)
	assert.Len(t, st.Markers, 1)

	doJSON(e, http.MethodPost, "/api/predict", `{"location":"Whitefield","total_sqft":1500,"bhk":3}`)

	_, after := doJSON(e, http.MethodGet, "/api/map", "")
	data, _ = json.Marshal(after.Data)
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Len(t, st.Markers, 5)
}

func TestFocusByIndex(t *testing.T) {
	_, e := newTestHandler(t, false)
	doJSON(e, http.MethodPost, "/api/predict", `{"location":"Whitefield","total_sqft":1500,"bhk":3}`)

	_, envelope := doJSON(e, http.MethodPost, "/api/map/focus", `{"index":0}`)
	assert.Equal(t, http.StatusOK, envelope.Status)

	_, missing := doJSON(e, http.MethodPost, "/api/map/focus", `{"index":99}`)
	assert.Equal(t, http.StatusNotFound, missing.Status)
}

func TestFocusRequiresTarget(t *testing.T) {
	_, e := newTestHandler(t, false)

	_, envelope := doJSON(e, http.MethodPost, "/api/map/focus", `{}`)
	assert.Equal(t, http.StatusBadRequest, envelope.Status)
}

func TestHistoryDisabled(t *testing.T) {
	_, e := newTestHandler(t, false)

	_, envelope := doJSON(e, http.MethodGet, "/api/history", "")
	assert.Equal(t, http.StatusNotFound, envelope.Status)
}

func TestHealth(t *testing.T) {
	_, e := newTestHandler(t, false)

	rec, envelope := doJSON(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, envelope.Status)
}
