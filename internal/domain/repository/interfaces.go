package repository

import (
	"context"
	"time"

	"EstatePulse/internal/domain/models"
)

// Publisher emits prediction events for downstream consumers
// (offline retraining, analytics pipelines).
type Publisher interface {
	Publish(ctx context.Context, rec *models.PredictionRecord) error
	Close() error
}

// HistoryStore persists served predictions and reads them back for the
// history endpoint.
type HistoryStore interface {
	Store(ctx context.Context, rec *models.PredictionRecord) error
	Recent(ctx context.Context, location string, from, to time.Time, limit int) ([]*models.PredictionRecord, error)
	Health(ctx context.Context) error
	Close() error
}

type Metrics interface {
	RecordPrediction(source, location string)
	RecordFallback(reason string)
	RecordError(kind string)
	RecordLastPrice(location string, pricePerSqft float64)
	RecordLatency(op string, seconds float64)
}
