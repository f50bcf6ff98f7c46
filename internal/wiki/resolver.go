package wiki

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

// ErrNotFound is the expected outcome when no candidate survives the
// relevance filters in any configured language.
var ErrNotFound = errors.New("wiki: no matching article")

const maxExtractRunes = 300

// Options configures the resolver.
type Options struct {
	APIFormat string        // API endpoint, %s replaced by language code
	Languages []string      // ordered fallback chain, primary first
	MaxHits   int           // candidates per search (default 5)
	RadiusKm  float64       // plausibility radius around the city anchor
	Timeout   time.Duration // per-call timeout
}

// Resolver finds the best-matching encyclopedia article for a POI,
// applying the disambiguation heuristics around homonymous titles.
type Resolver struct {
	client    *client
	languages []string
	maxHits   int
	radiusKm  float64
	rules     []domain.KeywordRule
	store     *redisstore.Store
	logger    logger.Logger
}

// New builds the resolver. The store may be nil (caching disabled);
// nil rules fall back to the built-in table.
func New(opts Options, rules []domain.KeywordRule, store *redisstore.Store, log logger.Logger) *Resolver {
	if opts.MaxHits <= 0 {
		opts.MaxHits = 5
	}
	if opts.RadiusKm <= 0 {
		opts.RadiusKm = domain.DefaultPlausibleKm
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if len(rules) == 0 {
		rules = domain.DefaultKeywordRules()
	}

	return &Resolver{
		client:    &client{apiFormat: opts.APIFormat, http: &http.Client{Timeout: opts.Timeout}},
		languages: opts.Languages,
		maxHits:   opts.MaxHits,
		radiusKm:  opts.RadiusKm,
		rules:     rules,
		store:     store,
		logger:    log,
	}
}

// Resolve runs the full per-language procedure: search, relevance
// filtering, lazy detail fetch, distance check. The primary language is
// tried first; a total miss in one language falls through to the next.
// ErrNotFound is an expected outcome, not an error condition.
func (r *Resolver) Resolve(ctx context.Context, poiName, cityName, englishName string, anchor *domain.Coordinate) (*domain.Article, error) {
	for _, lang := range r.languages {
		if cached, err := r.store.GetCachedArticle(ctx, lang, poiName, cityName); err == nil && cached != nil {
			r.logger.Debug("article cache hit",
				logger.String("lang", lang),
				logger.String("poi", poiName))
			return cached, nil
		}

		article := r.resolveLang(ctx, lang, poiName, cityName, englishName, anchor)
		if article != nil {
			_ = r.store.CacheArticle(ctx, lang, poiName, cityName, article, redisstore.DefaultArticleTTL)
			return article, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Resolver) resolveLang(ctx context.Context, lang, poiName, cityName, englishName string, anchor *domain.Coordinate) *domain.Article {
	hits, err := r.client.search(ctx, lang, poiName+" "+cityName, r.maxHits)
	if err != nil {
		r.logger.Debug("wiki search failed",
			logger.String("lang", lang),
			logger.String("poi", poiName),
			logger.Error(err))
		return nil
	}
	if len(hits) == 0 {
		// Zero results for the city-qualified term: retry the bare name.
		hits, err = r.client.search(ctx, lang, poiName, r.maxHits)
		if err != nil || len(hits) == 0 {
			return nil
		}
	}

	candidates := r.filterCandidates(hits, poiName, cityName, englishName)
	if len(candidates) == 0 {
		return nil
	}

	// Verbatim-title candidates ahead of the rest, search order preserved
	// within each group.
	ordered := make([]searchHit, 0, len(candidates))
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.Title), strings.ToLower(poiName)) {
			ordered = append(ordered, c)
		}
	}
	for _, c := range candidates {
		if !strings.Contains(strings.ToLower(c.Title), strings.ToLower(poiName)) {
			ordered = append(ordered, c)
		}
	}

	// Details are fetched lazily, one candidate at a time, so rejected
	// candidates cost a single search call, not K detail calls.
	for _, c := range ordered {
		detail, err := r.client.detail(ctx, lang, c.PageID)
		if err != nil {
			r.logger.Debug("wiki detail fetch failed",
				logger.String("lang", lang),
				logger.String("title", c.Title),
				logger.Error(err))
			continue
		}

		if domain.Conflicts(r.rules, poiName, detail.Extract) {
			r.logger.Debug("candidate rejected by keyword rules",
				logger.String("title", c.Title))
			continue
		}

		var coord *domain.Coordinate
		if len(detail.Coordinates) > 0 {
			coord = &domain.Coordinate{Lat: detail.Coordinates[0].Lat, Lon: detail.Coordinates[0].Lon}
			if !domain.Plausible(anchor, *coord, r.radiusKm) {
				r.logger.Debug("candidate rejected by distance filter",
					logger.String("title", c.Title),
					logger.Float64("lat", coord.Lat),
					logger.Float64("lon", coord.Lon))
				continue
			}
		}

		article := &domain.Article{
			Title:      c.Title,
			URL:        r.client.articleURL(lang, c.Title),
			Coordinate: coord,
			Extract:    truncateExtract(detail.Extract),
		}
		if domain.UsableImage(detail.Thumbnail.Source) {
			article.ImageURL = detail.Thumbnail.Source
		}
		return article
	}

	return nil
}

// filterCandidates applies the cheap, search-stage relevance filters.
func (r *Resolver) filterCandidates(hits []searchHit, poiName, cityName, englishName string) []searchHit {
	kept := make([]searchHit, 0, len(hits))
	for _, h := range hits {
		if domain.TitleIsCity(h.Title, cityName) {
			continue
		}
		if domain.IsDisambiguation(h.Title, h.Snippet) {
			continue
		}
		if !domain.NameOverlap(h.Title, poiName, englishName) {
			continue
		}
		if !domain.CityContext(h.Title, h.Snippet, cityName, poiName) {
			continue
		}
		if domain.Conflicts(r.rules, poiName, h.Title+" "+h.Snippet) {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

func truncateExtract(extract string) string {
	runes := []rune(strings.TrimSpace(extract))
	if len(runes) <= maxExtractRunes {
		return string(runes)
	}
	return string(runes[:maxExtractRunes]) + "..."
}
