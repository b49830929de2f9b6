package contentful

import (
	"testing"

	"propmatics_backend/internal/content"

	"github.com/stretchr/testify/assert"
)

func TestGeocodeKnownCities(t *testing.T) {
	tests := []struct {
		name     string
		location string
		expected content.Coordinate
	}{
		{"exact city name", "mumbai", content.Coordinate{Lat: 19.076, Lon: 72.8777}},
		{"mixed case", "Bangalore", content.Coordinate{Lat: 12.9716, Lon: 77.5946}},
		{"city inside longer text", "Gachibowli, Hyderabad, Telangana", content.Coordinate{Lat: 17.385, Lon: 78.4867}},
		{"delhi", "New Delhi", content.Coordinate{Lat: 28.6139, Lon: 77.209}},
		{"chennai", "chennai omr", content.Coordinate{Lat: 13.0827, Lon: 80.2707}},
		{"pune", "Hinjewadi PUNE", content.Coordinate{Lat: 18.5204, Lon: 73.8567}},
		{"kolkata", "Salt Lake, Kolkata", content.Coordinate{Lat: 22.5726, Lon: 88.3639}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Geocode(tt.location))
		})
	}
}

func TestGeocodeUnknownLocationFallsBack(t *testing.T) {
	assert.Equal(t, DefaultCoordinate, Geocode("Atlantis"))
	assert.Equal(t, DefaultCoordinate, Geocode(""))
}

func TestGeocodeFirstMatchWins(t *testing.T) {
	// Hyderabad is declared before Mumbai, so a text mentioning both
	// resolves to Hyderabad.
	got := Geocode("between mumbai and hyderabad")
	assert.Equal(t, content.Coordinate{Lat: 17.385, Lon: 78.4867}, got)
}
