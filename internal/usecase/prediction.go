package usecase

import (
	"context"
	"errors"
	"time"

	"EstatePulse/internal/domain/models"
	"EstatePulse/internal/domain/repository"
	domsvc "EstatePulse/internal/domain/service"
	"EstatePulse/internal/service/modelserver"
	"EstatePulse/pkg/cache"
	applogger "EstatePulse/pkg/logger"
)

// Predictor runs a prediction request against the model backend and owns
// the substitution policy: any backend failure is absorbed and replaced
// with a mock estimate. The caller always gets a result; Source and the
// fallback metric keep the substitution auditable.
type Predictor struct {
	client   domsvc.ModelClient
	mock     domsvc.Estimator
	history  repository.HistoryStore // optional
	events   repository.Publisher    // optional
	cache    cache.Service           // optional
	cacheTTL time.Duration
	metrics  repository.Metrics
	logger   *applogger.Logger
}

// NewPredictor creates the prediction usecase. history, events and cache
// may be nil; the request path works without them.
func NewPredictor(
	client domsvc.ModelClient,
	mock domsvc.Estimator,
	history repository.HistoryStore,
	events repository.Publisher,
	c cache.Service,
	cacheTTL time.Duration,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *Predictor {
	return &Predictor{
		client:   client,
		mock:     mock,
		history:  history,
		events:   events,
		cache:    c,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		logger:   logger,
	}
}

// Predict returns a well-formed result for every valid request.
func (p *Predictor) Predict(ctx context.Context, req *models.PredictionRequest) *models.PredictionResult {
	start := time.Now()
	defer func() {
		p.metrics.RecordLatency("predict", time.Since(start).Seconds())
	}()

	cacheKey := p.requestKey(req)
	if p.cache != nil {
		var cached models.PredictionResult
		if err := p.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached
		}
	}

	res, err := p.client.Predict(ctx, req)
	if err != nil {
		reason := fallbackReason(err)
		p.logger.Warn("model backend unavailable, substituting mock estimate",
			applogger.String("location", req.Location),
			applogger.String("reason", reason),
			applogger.Error(err),
		)
		p.metrics.RecordFallback(reason)
		res = p.mock.Estimate(req)
	}

	p.metrics.RecordPrediction(res.Source, res.Location)
	p.metrics.RecordLastPrice(res.Location, res.PredictedPricePerSqft)

	if p.cache != nil && res.Source == models.SourceBackend {
		if err := p.cache.Set(ctx, cacheKey, res, p.cacheTTL); err != nil {
			p.logger.Warn("prediction cache write failed", applogger.Error(err))
		}
	}

	p.record(req, res)
	return res
}

// record persists and publishes the served prediction. Failures here are
// observability losses, not request failures.
func (p *Predictor) record(req *models.PredictionRequest, res *models.PredictionResult) {
	if p.history == nil && p.events == nil {
		return
	}

	rec := &models.PredictionRecord{
		Timestamp:    time.Now().UTC(),
		Location:     res.Location,
		TotalSqft:    req.TotalSqft,
		BHK:          req.BHK,
		PricePerSqft: res.PredictedPricePerSqft,
		TotalPrice:   res.TotalEstimatedPrice,
		Source:       res.Source,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if p.history != nil {
			if err := p.history.Store(ctx, rec); err != nil {
				p.metrics.RecordError("history_store")
				p.logger.Warn("history store failed", applogger.Error(err))
			}
		}
		if p.events != nil {
			if err := p.events.Publish(ctx, rec); err != nil {
				p.metrics.RecordError("event_publish")
				p.logger.Warn("event publish failed", applogger.Error(err))
			}
		}
	}()
}

func (p *Predictor) requestKey(req *models.PredictionRequest) string {
	raw := cache.GenerateKeyWithParams("prediction",
		req.Location, req.TotalSqft, req.BHK, req.Bath, req.Balcony, req.AreaType)
	return cache.GenerateKey("prediction", cache.HashKey(raw))
}

func fallbackReason(err error) string {
	var fe *modelserver.FetchError
	if errors.As(err, &fe) {
		return string(fe.Kind)
	}
	return "unknown"
}
