package redis

import "strings"

const (
	// KeyPrefixGeocode is the prefix for cached forward geocode lookups
	KeyPrefixGeocode = "wayfind:geocode:"
	// KeyPrefixArticle is the prefix for cached encyclopedia resolutions
	KeyPrefixArticle = "wayfind:article:"
)

// GeocodeKey returns the Redis key for a cached geocode query
func GeocodeKey(query string) string {
	return KeyPrefixGeocode + normalize(query)
}

// ArticleKey returns the Redis key for a cached article resolution
func ArticleKey(lang, poiName, cityName string) string {
	return KeyPrefixArticle + lang + ":" + normalize(poiName) + ":" + normalize(cityName)
}

// normalize lowercases and collapses whitespace so equivalent queries
// share one cache entry.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
