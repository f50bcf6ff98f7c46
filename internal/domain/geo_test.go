package domain

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name      string
		a         Coordinate
		b         Coordinate
		expected  float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Coordinate{Lat: 46.77, Lon: 23.59},
			b:         Coordinate{Lat: 46.77, Lon: 23.59},
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "one degree of latitude",
			a:         Coordinate{Lat: 0, Lon: 0},
			b:         Coordinate{Lat: 1, Lon: 0},
			expected:  111.19,
			tolerance: 0.5,
		},
		{
			name:      "one degree of longitude at the equator",
			a:         Coordinate{Lat: 0, Lon: 0},
			b:         Coordinate{Lat: 0, Lon: 1},
			expected:  111.19,
			tolerance: 0.5,
		},
		{
			name:      "symmetric",
			a:         Coordinate{Lat: 50.08, Lon: 4.82},
			b:         Coordinate{Lat: 50.13, Lon: 4.82},
			expected:  HaversineKm(Coordinate{Lat: 50.13, Lon: 4.82}, Coordinate{Lat: 50.08, Lon: 4.82}),
			tolerance: 0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("HaversineKm() = %v, want %v (±%v)", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestPlausible(t *testing.T) {
	anchor := &Coordinate{Lat: 50.1380, Lon: 4.8256} // Givet

	tests := []struct {
		name      string
		anchor    *Coordinate
		candidate Coordinate
		radiusKm  float64
		expected  bool
	}{
		{
			name:      "nil anchor always passes",
			anchor:    nil,
			candidate: Coordinate{Lat: -33.86, Lon: 151.20},
			radiusKm:  DefaultPlausibleKm,
			expected:  true,
		},
		{
			name:      "candidate inside radius",
			anchor:    anchor,
			candidate: Coordinate{Lat: 50.14, Lon: 4.83},
			radiusKm:  DefaultPlausibleKm,
			expected:  true,
		},
		{
			name:      "candidate outside radius",
			anchor:    anchor,
			candidate: Coordinate{Lat: 51.5, Lon: 4.83},
			radiusKm:  DefaultPlausibleKm,
			expected:  false,
		},
		{
			name:      "zero radius falls back to the default",
			anchor:    anchor,
			candidate: Coordinate{Lat: 50.14, Lon: 4.83},
			radiusKm:  0,
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plausible(tt.anchor, tt.candidate, tt.radiusKm); got != tt.expected {
				t.Errorf("Plausible() = %v, want %v", got, tt.expected)
			}
		})
	}
}
