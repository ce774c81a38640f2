package estimator

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"EstatePulse/internal/domain/models"
	domsvc "EstatePulse/internal/domain/service"
	"EstatePulse/pkg/util"
)

const (
	basePricePerSqft = 6500.0

	// jitter radii in degrees
	unknownLocationJitter = 0.075
	comparableJitter      = 0.01

	comparableCount = 4
)

// Mock synthesizes plausible prediction results locally. It stands in for
// the model backend whenever the backend cannot answer.
type Mock struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock creates a mock estimator. Seed 0 seeds from the clock; any other
// value gives a reproducible stream.
func NewMock(seed int64) *Mock {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Mock{rng: rand.New(rand.NewSource(seed))}
}

// Estimate computes a substitute result from the request attributes alone.
func (m *Mock) Estimate(req *models.PredictionRequest) *models.PredictionResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	coord, resolvedName := m.resolveCoordinates(req.Location)

	bhkMultiplier := 1 + float64(req.BHK-2)*0.15
	sizeMultiplier := 1.0
	switch {
	case req.TotalSqft < 1000:
		sizeMultiplier = 1.1
	case req.TotalSqft > 2000:
		sizeMultiplier = 0.9
	}

	pricePerSqft := util.Round2(basePricePerSqft*bhkMultiplier*sizeMultiplier + m.uniform(-500, 500))
	totalPrice := util.Round2(pricePerSqft * req.TotalSqft)

	return &models.PredictionResult{
		Success:                      true,
		Location:                     req.Location,
		Coordinates:                  coord,
		PredictedPricePerSqft:        pricePerSqft,
		TotalEstimatedPrice:          totalPrice,
		TotalEstimatedPriceFormatted: util.FormatLakh(totalPrice),
		ConfidenceInterval: models.ConfidenceInterval{
			Lower: util.Round2(pricePerSqft * 0.85),
			Upper: util.Round2(pricePerSqft * 1.15),
		},
		NearbyComparables: m.comparables(resolvedName, req.BHK, coord),
		Source:            models.SourceMock,
	}
}

func (m *Mock) resolveCoordinates(location string) (models.Coordinates, string) {
	if l, ok := ResolveLocality(location); ok {
		return l.Coord, l.Name
	}
	return models.Coordinates{
		Latitude:  CityCenter.Latitude + m.uniform(-unknownLocationJitter, unknownLocationJitter),
		Longitude: CityCenter.Longitude + m.uniform(-unknownLocationJitter, unknownLocationJitter),
	}, location
}

func (m *Mock) comparables(location string, bhk int, around models.Coordinates) []models.Comparable {
	out := make([]models.Comparable, 0, comparableCount)
	for i := 0; i < comparableCount; i++ {
		out = append(out, models.Comparable{
			Location:     location,
			BHK:          bhk,
			TotalSqft:    util.Round2(m.uniform(1000, 2000)),
			PricePerSqft: util.Round2(m.uniform(5000, 8000)),
			DistanceKm:   util.Round1(m.uniform(0.5, 2.5)),
			Latitude:     around.Latitude + m.uniform(-comparableJitter, comparableJitter),
			Longitude:    around.Longitude + m.uniform(-comparableJitter, comparableJitter),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

func (m *Mock) uniform(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}

var _ domsvc.Estimator = (*Mock)(nil)
