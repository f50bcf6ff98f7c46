package domain

// Place is a successful geocoder lookup: a coordinate plus the
// provider's normalized name for it (may be empty).
type Place struct {
	Name       string     `json:"name,omitempty"`
	Coordinate Coordinate `json:"coordinate"`
}

// Address is a reverse geocode result.
type Address struct {
	// Locality is the best available settlement name
	// (city, falling back to town, village, then hamlet).
	Locality    string `json:"locality,omitempty"`
	Country     string `json:"country,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// Article is a resolved encyclopedia reference for a POI.
type Article struct {
	Title      string      `json:"title"`
	URL        string      `json:"url"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
	Extract    string      `json:"extract,omitempty"`
	ImageURL   string      `json:"imageUrl,omitempty"`
}
