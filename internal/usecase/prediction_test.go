package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EstatePulse/internal/domain/models"
	"EstatePulse/internal/service/estimator"
	"EstatePulse/internal/service/modelserver"
	"EstatePulse/pkg/cache"
	"EstatePulse/pkg/logger"
)

type stubClient struct {
	result    *models.PredictionResult
	err       error
	locations []models.Location
	locErr    error
	calls     int
}

func (s *stubClient) Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubClient) Locations(ctx context.Context) ([]models.Location, error) {
	if s.locErr != nil {
		return nil, s.locErr
	}
	return s.locations, nil
}

type recordingMetrics struct {
	mu          sync.Mutex
	predictions []string
	fallbacks   []string
	errors      []string
}

func (m *recordingMetrics) RecordPrediction(source, location string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictions = append(m.predictions, source)
}

func (m *recordingMetrics) RecordFallback(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks = append(m.fallbacks, reason)
}

func (m *recordingMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, kind)
}

func (m *recordingMetrics) RecordLastPrice(location string, pricePerSqft float64) {}
func (m *recordingMetrics) RecordLatency(op string, seconds float64)              {}

func backendResult() *models.PredictionResult {
	return &models.PredictionResult{
		Success:               true,
		Location:              "Whitefield",
		PredictedPricePerSqft: 7200,
		TotalEstimatedPrice:   108,
		Source:                models.SourceBackend,
	}
}

func sampleRequest() *models.PredictionRequest {
	return &models.PredictionRequest{
		Location:  "Whitefield",
		TotalSqft: 1500,
		BHK:       3,
		Bath:      2,
	}
}

func TestPredictUsesBackend(t *testing.T) {
	client := &stubClient{result: backendResult()}
	metrics := &recordingMetrics{}
	p := NewPredictor(client, estimator.NewMock(1), nil, nil, nil, 0, metrics, logger.NewNop())

	res := p.Predict(context.Background(), sampleRequest())

	require.NotNil(t, res)
	assert.Equal(t, models.SourceBackend, res.Source)
	assert.Equal(t, []string{models.SourceBackend}, metrics.predictions)
	assert.Empty(t, metrics.fallbacks)
}

func TestPredictFallsBackOnNetworkFailure(t *testing.T) {
	client := &stubClient{err: &modelserver.FetchError{Kind: modelserver.FailureNetwork, Detail: "connection refused"}}
	metrics := &recordingMetrics{}
	p := NewPredictor(client, estimator.NewMock(1), nil, nil, nil, 0, metrics, logger.NewNop())

	req := sampleRequest()
	res := p.Predict(context.Background(), req)

	require.NotNil(t, res)
	assert.True(t, res.Success)
	assert.Equal(t, models.SourceMock, res.Source)
	assert.Equal(t, req.Location, res.Location)
	assert.Equal(t, []string{string(modelserver.FailureNetwork)}, metrics.fallbacks)
	assert.Equal(t, []string{models.SourceMock}, metrics.predictions)
}

func TestPredictFallbackReasonPerKind(t *testing.T) {
	for _, kind := range []modelserver.FailureKind{
		modelserver.FailureNetwork,
		modelserver.FailureProtocol,
		modelserver.FailureParse,
	} {
		client := &stubClient{err: &modelserver.FetchError{Kind: kind}}
		metrics := &recordingMetrics{}
		p := NewPredictor(client, estimator.NewMock(1), nil, nil, nil, 0, metrics, logger.NewNop())

		p.Predict(context.Background(), sampleRequest())

		assert.Equal(t, []string{string(kind)}, metrics.fallbacks, "kind %s", kind)
	}
}

func TestPredictCachesBackendResults(t *testing.T) {
	client := &stubClient{result: backendResult()}
	metrics := &recordingMetrics{}
	mem := cache.NewMemoryCache()
	defer mem.Close()
	p := NewPredictor(client, estimator.NewMock(1), nil, nil, mem, time.Minute, metrics, logger.NewNop())

	req := sampleRequest()
	first := p.Predict(context.Background(), req)
	second := p.Predict(context.Background(), req)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, first.PredictedPricePerSqft, second.PredictedPricePerSqft)
}

func TestPredictDoesNotCacheMockResults(t *testing.T) {
	client := &stubClient{err: &modelserver.FetchError{Kind: modelserver.FailureNetwork}}
	metrics := &recordingMetrics{}
	mem := cache.NewMemoryCache()
	defer mem.Close()
	p := NewPredictor(client, estimator.NewMock(1), nil, nil, mem, time.Minute, metrics, logger.NewNop())

	req := sampleRequest()
	p.Predict(context.Background(), req)
	p.Predict(context.Background(), req)

	assert.Equal(t, 2, client.calls)
}
