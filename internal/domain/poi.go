package domain

import "time"

// Category classifies an upstream recommendation.
type Category string

const (
	CategoryTouristAttraction Category = "Tourist Attraction"
	CategoryRestaurant        Category = "Restaurant"
	CategoryGuesthouse        Category = "Guesthouse"
	CategoryHotel             Category = "Hotel"
)

// ParseCategory normalizes an upstream category string.
// Unknown values are kept verbatim so a new upstream category
// degrades to "no encyclopedia lookup" instead of an error.
func ParseCategory(s string) Category {
	switch s {
	case "Tourist Attraction", "TouristAttraction":
		return CategoryTouristAttraction
	case "Restaurant":
		return CategoryRestaurant
	case "Guesthouse":
		return CategoryGuesthouse
	case "Hotel":
		return CategoryHotel
	default:
		return Category(s)
	}
}

// NeedsReference reports whether a category is enriched with an
// encyclopedia article. Lodging and dining entries are geocoded only.
func (c Category) NeedsReference() bool {
	return c == CategoryTouristAttraction
}

// POI is the canonical runtime record of one recommended place.
//
// It is NOT tied to the upstream source, the geocoder or the
// encyclopedia; all enrichment steps merge into this structure.
//
// Within one search batch a POI is uniquely identified by Name:
// enrichment updates are applied by name, not by a surrogate id.
type POI struct {
	// ─────────────────────────────
	// Identity (immutable per batch)
	// ─────────────────────────────

	// Name as supplied by the upstream source.
	Name string `json:"name"`

	Category Category `json:"category"`

	// EnglishName is an optional cross-language matching aid.
	EnglishName string `json:"englishName,omitempty"`

	// ─────────────────────────────
	// Enriched fields (replaceable)
	// ─────────────────────────────

	// Description starts as the upstream blurb and is replaced by the
	// article extract when one is found.
	Description string `json:"description,omitempty"`

	// DisplayName is the geocoder's officially normalized name when
	// present, else Name.
	DisplayName string `json:"displayName,omitempty"`

	Coordinate    *Coordinate `json:"coordinate,omitempty"`
	ReferenceLink string      `json:"referenceLink,omitempty"`
	ImageURL      string      `json:"imageUrl,omitempty"`

	// HasLocation is true once a coordinate has passed the distance
	// filter. A POI with a rejected coordinate keeps its textual
	// enrichment but gets no marker.
	HasLocation bool `json:"hasLocation"`

	UpdatedAt time.Time `json:"updatedAt"`
}
