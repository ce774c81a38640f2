package models

import "time"

// PredictionRequest describes the property a price estimate is asked for.
// Bound from JSON; validation and defaults applied at the HTTP layer.
type PredictionRequest struct {
	Location  string  `json:"location" validate:"required"`
	TotalSqft float64 `json:"total_sqft" validate:"required,gt=0"`
	BHK       int     `json:"bhk" default:"2" validate:"gte=0,lte=20"`
	Bath      int     `json:"bath" default:"1" validate:"gte=0,lte=20"`
	Balcony   int     `json:"balcony" validate:"gte=0,lte=10"`
	AreaType  string  `json:"area_type" default:"Super built-up Area"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ConfidenceInterval bounds a price-per-sqft estimate.
// Invariant: Lower <= estimate <= Upper.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Comparable is a nearby property used as a price reference point.
type Comparable struct {
	Location     string  `json:"location"`
	BHK          int     `json:"bhk"`
	TotalSqft    float64 `json:"total_sqft"`
	PricePerSqft float64 `json:"price_per_sqft"`
	DistanceKm   float64 `json:"distance_km"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// Result sources.
const (
	SourceBackend = "backend"
	SourceMock    = "mock"
)

// PredictionResult is the shared shape produced by both the model backend
// and the mock estimator. The renderer depends on both producers
// satisfying it; Source tells them apart.
type PredictionResult struct {
	Success                      bool               `json:"success"`
	Location                     string             `json:"location"`
	Coordinates                  Coordinates        `json:"coordinates"`
	PredictedPricePerSqft        float64            `json:"predicted_price_per_sqft"`
	TotalEstimatedPrice          float64            `json:"total_estimated_price"`
	TotalEstimatedPriceFormatted string             `json:"total_estimated_price_formatted"`
	ConfidenceInterval           ConfidenceInterval `json:"confidence_interval"`
	NearbyComparables            []Comparable       `json:"nearby_comparables"`
	Source                       string             `json:"source"`
}

// Location is an autocomplete entry.
type Location struct {
	Name string `json:"name"`
}

// PredictionRecord is a stored prediction row for the history store.
type PredictionRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Location     string    `json:"location"`
	TotalSqft    float64   `json:"total_sqft"`
	BHK          int       `json:"bhk"`
	PricePerSqft float64   `json:"price_per_sqft"`
	TotalPrice   float64   `json:"total_price"`
	Source       string    `json:"source"`
}
