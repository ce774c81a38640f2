package estimator

import (
	"strings"

	"EstatePulse/internal/domain/models"
)

// CityCenter is the fallback anchor for unknown locations.
var CityCenter = models.Coordinates{Latitude: 12.9716, Longitude: 77.5946}

// Locality is a known neighbourhood with its anchor coordinate.
type Locality struct {
	Name  string
	Coord models.Coordinates
}

// Localities is the built-in table used for both coordinate resolution and
// the autocomplete fallback list.
var Localities = []Locality{
	{"Whitefield", models.Coordinates{Latitude: 12.9698, Longitude: 77.7500}},
	{"Koramangala", models.Coordinates{Latitude: 12.9349, Longitude: 77.6175}},
	{"Indiranagar", models.Coordinates{Latitude: 12.9719, Longitude: 77.6412}},
	{"Electronic City", models.Coordinates{Latitude: 12.8452, Longitude: 77.6602}},
	{"Marathahalli", models.Coordinates{Latitude: 12.9591, Longitude: 77.6974}},
	{"HSR Layout", models.Coordinates{Latitude: 12.9116, Longitude: 77.6389}},
	{"Jayanagar", models.Coordinates{Latitude: 12.9308, Longitude: 77.5838}},
	{"BTM Layout", models.Coordinates{Latitude: 12.9166, Longitude: 77.6101}},
	{"Hebbal", models.Coordinates{Latitude: 13.0358, Longitude: 77.5970}},
	{"Yelahanka", models.Coordinates{Latitude: 13.1007, Longitude: 77.5963}},
	{"Rajajinagar", models.Coordinates{Latitude: 12.9915, Longitude: 77.5554}},
	{"Banashankari", models.Coordinates{Latitude: 12.9255, Longitude: 77.5468}},
}

// FallbackLocations returns the built-in autocomplete list in table order.
func FallbackLocations() []models.Location {
	out := make([]models.Location, 0, len(Localities))
	for _, l := range Localities {
		out = append(out, models.Location{Name: l.Name})
	}
	return out
}

// ResolveLocality matches a free-form location string against the table.
// Matching is case-insensitive and substring in either direction; the
// first match wins.
func ResolveLocality(name string) (Locality, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Locality{}, false
	}
	for _, l := range Localities {
		known := strings.ToLower(l.Name)
		if strings.Contains(needle, known) || strings.Contains(known, needle) {
			return l, true
		}
	}
	return Locality{}, false
}
