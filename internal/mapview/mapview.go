package mapview

import (
	"fmt"
	"sync"

	"EstatePulse/internal/domain/models"
	"EstatePulse/internal/service/estimator"
)

const (
	zoomDefault    = 11
	zoomFit        = 13
	zoomPrediction = 14
	zoomFocus      = 16

	boundsPadding  = 0.1
	matchTolerance = 1e-4

	welcomePopup = "Search for a property to see a price estimate"
)

// MarkerKind tags what a marker represents.
type MarkerKind string

const (
	KindInfo       MarkerKind = "info"
	KindPrediction MarkerKind = "prediction"
	KindComparable MarkerKind = "comparable"
)

// Marker is a pin on the map with optional popup text.
type Marker struct {
	Kind      MarkerKind `json:"kind"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Popup     string     `json:"popup"`
	PopupOpen bool       `json:"popup_open"`
}

// Bounds is a rectangular viewport extent.
type Bounds struct {
	SouthWest models.Coordinates `json:"south_west"`
	NorthEast models.Coordinates `json:"north_east"`
}

// State is the full map view model served by GET /api/map.
type State struct {
	Center  models.Coordinates `json:"center"`
	Zoom    int                `json:"zoom"`
	Bounds  *Bounds            `json:"bounds,omitempty"`
	Markers []Marker           `json:"markers"`
}

// View holds the server-side map state. All mutation goes through the
// mutex; handlers share one instance.
type View struct {
	mu    sync.Mutex
	state State
}

func New() *View {
	v := &View{}
	v.Initialize()
	return v
}

// Initialize resets the view to the city overview with a single
// informational marker.
func (v *View) Initialize() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = State{
		Center: estimator.CityCenter,
		Zoom:   zoomDefault,
		Markers: []Marker{{
			Kind:      KindInfo,
			Latitude:  estimator.CityCenter.Latitude,
			Longitude: estimator.CityCenter.Longitude,
			Popup:     welcomePopup,
			PopupOpen: true,
		}},
	}
}

// Render replaces all markers with the given result: one prediction
// marker followed by one marker per comparable, viewport fitted around
// them. Rendering twice never accumulates markers.
func (v *View) Render(res *models.PredictionResult) {
	v.mu.Lock()
	defer v.mu.Unlock()

	markers := make([]Marker, 0, 1+len(res.NearbyComparables))
	markers = append(markers, Marker{
		Kind:      KindPrediction,
		Latitude:  res.Coordinates.Latitude,
		Longitude: res.Coordinates.Longitude,
		Popup:     predictionPopup(res),
		PopupOpen: true,
	})
	for _, c := range res.NearbyComparables {
		markers = append(markers, Marker{
			Kind:      KindComparable,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
			Popup:     comparablePopup(&c),
		})
	}

	v.state.Markers = markers
	if len(res.NearbyComparables) == 0 {
		v.state.Center = res.Coordinates
		v.state.Zoom = zoomPrediction
		v.state.Bounds = nil
		return
	}

	b := fitBounds(markers)
	v.state.Bounds = &b
	v.state.Center = models.Coordinates{
		Latitude:  (b.SouthWest.Latitude + b.NorthEast.Latitude) / 2,
		Longitude: (b.SouthWest.Longitude + b.NorthEast.Longitude) / 2,
	}
	v.state.Zoom = zoomFit
}

// FocusIndex focuses the i-th comparable of the last render. Reports
// false when the index is out of range.
func (v *View) FocusIndex(i int) (Marker, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Markers are laid out prediction-first, comparables after.
	pos := i + 1
	if i < 0 || pos >= len(v.state.Markers) || v.state.Markers[pos].Kind != KindComparable {
		return Marker{}, false
	}
	v.focusLocked(pos)
	return v.state.Markers[pos], true
}

// FocusAt focuses the marker closest to the given point, tolerating
// small coordinate drift. Reports false when nothing is close enough.
func (v *View) FocusAt(lat, lng float64) (Marker, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, m := range v.state.Markers {
		if m.Kind == KindInfo {
			continue
		}
		if abs(m.Latitude-lat) <= matchTolerance && abs(m.Longitude-lng) <= matchTolerance {
			v.focusLocked(i)
			return v.state.Markers[i], true
		}
	}
	return Marker{}, false
}

// Snapshot returns a copy of the current view state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := v.state
	out.Markers = make([]Marker, len(v.state.Markers))
	copy(out.Markers, v.state.Markers)
	if v.state.Bounds != nil {
		b := *v.state.Bounds
		out.Bounds = &b
	}
	return out
}

func (v *View) focusLocked(pos int) {
	for i := range v.state.Markers {
		v.state.Markers[i].PopupOpen = i == pos
	}
	m := v.state.Markers[pos]
	v.state.Center = models.Coordinates{Latitude: m.Latitude, Longitude: m.Longitude}
	v.state.Zoom = zoomFocus
	v.state.Bounds = nil
}

func predictionPopup(res *models.PredictionResult) string {
	return fmt.Sprintf("%s\n%s\n₹ %.2f per sqft\nrange ₹ %.2f – ₹ %.2f",
		res.Location,
		res.TotalEstimatedPriceFormatted,
		res.PredictedPricePerSqft,
		res.ConfidenceInterval.Lower,
		res.ConfidenceInterval.Upper,
	)
}

func comparablePopup(c *models.Comparable) string {
	return fmt.Sprintf("%s\n%d BHK, %.0f sqft\n₹ %.2f per sqft\n%.1f km away",
		c.Location, c.BHK, c.TotalSqft, c.PricePerSqft, c.DistanceKm)
}

func fitBounds(markers []Marker) Bounds {
	minLat, maxLat := markers[0].Latitude, markers[0].Latitude
	minLng, maxLng := markers[0].Longitude, markers[0].Longitude
	for _, m := range markers[1:] {
		minLat = min(minLat, m.Latitude)
		maxLat = max(maxLat, m.Latitude)
		minLng = min(minLng, m.Longitude)
		maxLng = max(maxLng, m.Longitude)
	}
	latPad := (maxLat - minLat) * boundsPadding
	lngPad := (maxLng - minLng) * boundsPadding
	return Bounds{
		SouthWest: models.Coordinates{Latitude: minLat - latPad, Longitude: minLng - lngPad},
		NorthEast: models.Coordinates{Latitude: maxLat + latPad, Longitude: maxLng + lngPad},
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
