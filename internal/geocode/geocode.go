package geocode

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/davmoraru/wayfind/internal/domain"
	"github.com/davmoraru/wayfind/internal/logger"
	redisstore "github.com/davmoraru/wayfind/internal/store/redis"
)

// ErrNotFound is the expected outcome of a lookup that produced no
// usable coordinate. Provider failures (network errors, empty result
// sets) are folded into it and never surfaced to callers.
var ErrNotFound = errors.New("geocode: no result")

const userAgent = "wayfind/0.1 (city recommendation service)"

// provider is a single geocoding backend.
type provider interface {
	name() string
	search(ctx context.Context, query string) (*domain.Place, error)
}

// Options configures the adapter.
type Options struct {
	NominatimURL string        // Nominatim-style search/reverse base URL
	PhotonURL    string        // Photon-style fallback base URL (optional)
	Timeout      time.Duration // per-call timeout
}

// Adapter resolves free-text place descriptions to coordinates using a
// ranked provider chain, with a best-effort Redis cache in front.
type Adapter struct {
	providers []provider
	nominatim *nominatimClient
	store     *redisstore.Store
	logger    logger.Logger
}

// New builds the adapter. The store may be nil (caching disabled).
func New(opts Options, store *redisstore.Store, log logger.Logger) *Adapter {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	httpClient := &http.Client{Timeout: opts.Timeout}

	nominatim := &nominatimClient{baseURL: strings.TrimRight(opts.NominatimURL, "/"), http: httpClient}
	providers := []provider{nominatim}
	if opts.PhotonURL != "" {
		providers = append(providers, &photonClient{baseURL: strings.TrimRight(opts.PhotonURL, "/"), http: httpClient})
	}

	return &Adapter{
		providers: providers,
		nominatim: nominatim,
		store:     store,
		logger:    log,
	}
}

// Locate resolves a single free-text query. Providers are consulted in
// order; the first usable result wins. All failures collapse to
// ErrNotFound.
func (a *Adapter) Locate(ctx context.Context, query string) (*domain.Place, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrNotFound
	}

	if cached, err := a.store.GetCachedGeocode(ctx, query); err == nil && cached != nil {
		a.logger.Debug("geocode cache hit", logger.String("query", query))
		return cached, nil
	}

	for _, p := range a.providers {
		place, err := p.search(ctx, query)
		if err != nil {
			a.logger.Debug("geocode provider miss",
				logger.String("provider", p.name()),
				logger.String("query", query),
				logger.Error(err))
			continue
		}
		_ = a.store.CacheGeocode(ctx, query, place, redisstore.DefaultGeocodeTTL)
		return place, nil
	}

	return nil, ErrNotFound
}

// LocatePlace resolves a named place inside a city by trying ranked
// query variants: city-qualified first, the bare name second, then the
// name with leading articles stripped. First success wins; no retries.
func (a *Adapter) LocatePlace(ctx context.Context, name, city string) (*domain.Place, error) {
	for _, variant := range QueryVariants(name, city) {
		place, err := a.Locate(ctx, variant)
		if err == nil {
			return place, nil
		}
	}
	return nil, ErrNotFound
}

// ReverseLocate maps a coordinate back to a place name for
// user-initiated point lookups.
func (a *Adapter) ReverseLocate(ctx context.Context, coord domain.Coordinate) (*domain.Address, error) {
	addr, err := a.nominatim.reverse(ctx, coord)
	if err != nil {
		a.logger.Debug("reverse geocode miss",
			logger.Float64("lat", coord.Lat),
			logger.Float64("lon", coord.Lon),
			logger.Error(err))
		return nil, ErrNotFound
	}
	return addr, nil
}

// leadingArticles are stripped to produce a last-resort query variant
// ("The Old Fort" -> "Old Fort").
var leadingArticles = []string{"the ", "a ", "an ", "la ", "le ", "les ", "el ", "il "}

// QueryVariants returns the ranked candidate queries for a place name.
func QueryVariants(name, city string) []string {
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	if name == "" {
		return nil
	}

	variants := make([]string, 0, 3)
	if city != "" {
		variants = append(variants, name+", "+city)
	}
	variants = append(variants, name)

	lower := strings.ToLower(name)
	for _, art := range leadingArticles {
		if strings.HasPrefix(lower, art) && len(name) > len(art) {
			stripped := strings.TrimSpace(name[len(art):])
			if stripped != "" && !strings.EqualFold(stripped, name) {
				variants = append(variants, stripped)
			}
			break
		}
	}

	return variants
}
