package service

import (
	"context"

	"EstatePulse/internal/domain/models"
)

// ModelClient talks to the upstream model-serving backend.
type ModelClient interface {
	Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error)
	Locations(ctx context.Context) ([]models.Location, error)
}

// Estimator produces a substitute prediction locally.
type Estimator interface {
	Estimate(req *models.PredictionRequest) *models.PredictionResult
}
