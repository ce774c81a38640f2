package estimator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EstatePulse/internal/domain/models"
)

func testRequest() *models.PredictionRequest {
	return &models.PredictionRequest{
		Location:  "Koramangala",
		TotalSqft: 1500,
		BHK:       3,
		Bath:      2,
		Balcony:   1,
		AreaType:  "Super built-up Area",
	}
}

func TestEstimateConfidenceIntervalBounds(t *testing.T) {
	m := NewMock(1)
	for i := 0; i < 100; i++ {
		res := m.Estimate(testRequest())
		assert.LessOrEqual(t, res.ConfidenceInterval.Lower, res.PredictedPricePerSqft)
		assert.GreaterOrEqual(t, res.ConfidenceInterval.Upper, res.PredictedPricePerSqft)
	}
}

func TestEstimateTotalPriceConsistent(t *testing.T) {
	m := NewMock(2)
	res := m.Estimate(testRequest())
	assert.InDelta(t, res.PredictedPricePerSqft*1500, res.TotalEstimatedPrice, 0.01)
	assert.Contains(t, res.TotalEstimatedPriceFormatted, "Lakh")
}

func TestEstimateComparables(t *testing.T) {
	m := NewMock(3)
	res := m.Estimate(testRequest())

	require.Len(t, res.NearbyComparables, 4)
	for i, c := range res.NearbyComparables {
		assert.Equal(t, 3, c.BHK)
		assert.GreaterOrEqual(t, c.TotalSqft, 1000.0)
		assert.LessOrEqual(t, c.TotalSqft, 2000.0)
		assert.GreaterOrEqual(t, c.PricePerSqft, 5000.0)
		assert.LessOrEqual(t, c.PricePerSqft, 8000.0)
		assert.GreaterOrEqual(t, c.DistanceKm, 0.5)
		assert.LessOrEqual(t, c.DistanceKm, 2.5)
		if i > 0 {
			assert.GreaterOrEqual(t, c.DistanceKm, res.NearbyComparables[i-1].DistanceKm,
				"comparables must be sorted ascending by distance")
		}
		assert.InDelta(t, res.Coordinates.Latitude, c.Latitude, comparableJitter)
		assert.InDelta(t, res.Coordinates.Longitude, c.Longitude, comparableJitter)
	}
}

func TestResolveLocalityBothDirections(t *testing.T) {
	exact, ok := ResolveLocality("whitefield")
	require.True(t, ok)

	// request string contains the known name
	super, ok := ResolveLocality("Whitefield Main Road")
	require.True(t, ok)
	assert.Equal(t, exact.Coord, super.Coord)

	// request string is a substring of the known name
	sub, ok := ResolveLocality("electronic")
	require.True(t, ok)
	assert.Equal(t, "Electronic City", sub.Name)

	_, ok = ResolveLocality("")
	assert.False(t, ok)
}

func TestEstimateUnknownLocationNearCityCenter(t *testing.T) {
	m := NewMock(4)
	req := testRequest()
	req.Location = "Totally Unknown Place"

	res := m.Estimate(req)
	assert.True(t, res.Success)
	assert.LessOrEqual(t, math.Abs(res.Coordinates.Latitude-CityCenter.Latitude), unknownLocationJitter)
	assert.LessOrEqual(t, math.Abs(res.Coordinates.Longitude-CityCenter.Longitude), unknownLocationJitter)
}

func TestEstimateKoramangalaExample(t *testing.T) {
	m := NewMock(5)
	res := m.Estimate(testRequest())

	// basePrice * bhkMultiplier(3) * sizeMultiplier(1500 sqft) = 6500 * 1.15
	assert.InDelta(t, 7475, res.PredictedPricePerSqft, 500)
	assert.InDelta(t, 12.9349, res.Coordinates.Latitude, 1e-9)
	assert.InDelta(t, 77.6175, res.Coordinates.Longitude, 1e-9)
}

func TestEstimateDeterministicForSeed(t *testing.T) {
	a := NewMock(42).Estimate(testRequest())
	b := NewMock(42).Estimate(testRequest())
	assert.Equal(t, a, b)
}

func TestFallbackLocations(t *testing.T) {
	locs := FallbackLocations()
	require.Len(t, locs, 12)
	assert.Equal(t, "Whitefield", locs[0].Name)
}
