package usecase

import (
	"context"
	"time"

	"EstatePulse/internal/domain/models"
	"EstatePulse/internal/domain/repository"
	domsvc "EstatePulse/internal/domain/service"
	"EstatePulse/internal/service/estimator"
	"EstatePulse/pkg/cache"
	applogger "EstatePulse/pkg/logger"
)

const locationsCacheKey = "locations:all"

// LocationLoader serves the autocomplete location list. Resolution order
// is cache, then model backend, then the fixed fallback list. It never
// returns an error; an empty suggestion box is worse than a stale one.
type LocationLoader struct {
	client  domsvc.ModelClient
	cache   cache.Service // optional
	ttl     time.Duration
	metrics repository.Metrics
	logger  *applogger.Logger
}

func NewLocationLoader(
	client domsvc.ModelClient,
	c cache.Service,
	ttl time.Duration,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *LocationLoader {
	return &LocationLoader{
		client:  client,
		cache:   c,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// Load returns the known location names, falling back to the built-in
// locality list when the backend is unreachable.
func (l *LocationLoader) Load(ctx context.Context) []models.Location {
	start := time.Now()
	defer func() {
		l.metrics.RecordLatency("locations", time.Since(start).Seconds())
	}()

	if l.cache != nil {
		var cached []models.Location
		if err := l.cache.Get(ctx, locationsCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached
		}
	}

	locations, err := l.client.Locations(ctx)
	if err != nil {
		l.logger.Warn("location fetch failed, using fallback list",
			applogger.Error(err),
		)
		l.metrics.RecordFallback(fallbackReason(err))
		return estimator.FallbackLocations()
	}
	if len(locations) == 0 {
		return estimator.FallbackLocations()
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, locationsCacheKey, locations, l.ttl); err != nil {
			l.logger.Warn("location cache write failed", applogger.Error(err))
		}
	}
	return locations
}
