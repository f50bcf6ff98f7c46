package domain

import "math"

const (
	// DefaultPlausibleKm is the radius around the city anchor inside
	// which a resolved coordinate is considered plausible.
	DefaultPlausibleKm = 20.0

	earthRadiusKm = 6371.0
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(a, b Coordinate) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Plausible reports whether candidate lies within radiusKm of anchor.
// A nil anchor always passes: a failed city geocode must never suppress
// genuinely correct resolutions.
func Plausible(anchor *Coordinate, candidate Coordinate, radiusKm float64) bool {
	if anchor == nil {
		return true
	}
	if radiusKm <= 0 {
		radiusKm = DefaultPlausibleKm
	}
	return HaversineKm(*anchor, candidate) <= radiusKm
}
