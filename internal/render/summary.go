package render

import (
	"fmt"

	"EstatePulse/internal/domain/models"
	"EstatePulse/internal/mapview"
)

const noComparablesNote = "No comparable properties found nearby"

// ComparableEntry is one line of the comparables list. Index is stable
// for the lifetime of the render and accepted by the map focus endpoint.
type ComparableEntry struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// Summary is the presentation-ready view of a prediction result.
type Summary struct {
	Headline       string            `json:"headline"`
	TotalPrice     string            `json:"total_price"`
	PricePerSqft   string            `json:"price_per_sqft"`
	PriceRange     string            `json:"price_range"`
	Source         string            `json:"source"`
	Comparables    []ComparableEntry `json:"comparables"`
	ComparableNote string            `json:"comparable_note,omitempty"`
}

// Renderer turns results into summaries and keeps the map view in step.
type Renderer struct {
	view *mapview.View
}

func NewRenderer(view *mapview.View) *Renderer {
	return &Renderer{view: view}
}

// Render builds the summary for a result and updates the map view.
func (r *Renderer) Render(res *models.PredictionResult) Summary {
	r.view.Render(res)

	s := Summary{
		Headline:     fmt.Sprintf("Estimated price in %s", res.Location),
		TotalPrice:   res.TotalEstimatedPriceFormatted,
		PricePerSqft: fmt.Sprintf("₹ %.2f per sqft", res.PredictedPricePerSqft),
		PriceRange: fmt.Sprintf("₹ %.2f – ₹ %.2f per sqft",
			res.ConfidenceInterval.Lower, res.ConfidenceInterval.Upper),
		Source: res.Source,
	}

	if len(res.NearbyComparables) == 0 {
		s.ComparableNote = noComparablesNote
		return s
	}

	s.Comparables = make([]ComparableEntry, 0, len(res.NearbyComparables))
	for i, c := range res.NearbyComparables {
		s.Comparables = append(s.Comparables, ComparableEntry{
			Index: i,
			Label: fmt.Sprintf("%d BHK, %.0f sqft in %s at ₹ %.2f per sqft, %.1f km away",
				c.BHK, c.TotalSqft, c.Location, c.PricePerSqft, c.DistanceKm),
		})
	}
	return s
}
