// File: internal/contentful/geocode.go
package contentful

import (
	"strings"

	"propmatics_backend/internal/content"
)

// DefaultCoordinate is the Hyderabad city center, used whenever a
// location cannot be matched.
var DefaultCoordinate = content.Coordinate{Lat: 17.385, Lon: 78.4867}

// cityTable is an ordered lookup: matching walks it front to back, so
// overlapping city names resolve to whichever is declared first.
var cityTable = []struct {
	name  string
	coord content.Coordinate
}{
	{"hyderabad", content.Coordinate{Lat: 17.385, Lon: 78.4867}},
	{"mumbai", content.Coordinate{Lat: 19.076, Lon: 72.8777}},
	{"bangalore", content.Coordinate{Lat: 12.9716, Lon: 77.5946}},
	{"delhi", content.Coordinate{Lat: 28.6139, Lon: 77.209}},
	{"chennai", content.Coordinate{Lat: 13.0827, Lon: 80.2707}},
	{"pune", content.Coordinate{Lat: 18.5204, Lon: 73.8567}},
	{"kolkata", content.Coordinate{Lat: 22.5726, Lon: 88.3639}},
}

// Geocode maps free-text location input to an approximate coordinate by
// case-insensitive substring match against the known city table. Unknown
// or empty input returns DefaultCoordinate; Geocode never fails.
func Geocode(locationText string) content.Coordinate {
	if locationText == "" {
		return DefaultCoordinate
	}
	lower := strings.ToLower(locationText)
	for _, city := range cityTable {
		if strings.Contains(lower, city.name) {
			return city.coord
		}
	}
	return DefaultCoordinate
}
