// Package enrich runs the per-city pipeline: fetch the raw batch,
// anchor the city, then walk the batch resolving coordinates and
// reference articles for each entry.
package enrich

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/davmoraru/wayfind/internal/domain"
	"github.com/davmoraru/wayfind/internal/logger"
	"github.com/davmoraru/wayfind/internal/state"
)

// RecommendationSource supplies the raw POI batch for a city.
type RecommendationSource interface {
	Recommendations(ctx context.Context, city string) ([]domain.POI, error)
}

// Geocoder resolves free-form queries to coordinates.
type Geocoder interface {
	Locate(ctx context.Context, query string) (*domain.Place, error)
	LocatePlace(ctx context.Context, name, city string) (*domain.Place, error)
}

// ReferenceResolver finds the encyclopedia article for a POI.
type ReferenceResolver interface {
	Resolve(ctx context.Context, poiName, cityName, englishName string, anchor *domain.Coordinate) (*domain.Article, error)
}

// Options tunes the pipeline.
type Options struct {
	Delay    time.Duration // pause between entries, respects third-party rate limits
	Parallel int           // worker limit, 1 keeps the batch strictly sequential
	RadiusKm float64       // plausibility radius around the city anchor
}

// Orchestrator drives one enrichment session at a time. Starting a new
// search supersedes the previous session; its in-flight lookups finish
// but their results are dropped at the store boundary.
type Orchestrator struct {
	source   RecommendationSource
	geocoder Geocoder
	resolver ReferenceResolver
	sessions *state.SessionStore

	delay    time.Duration
	parallel int
	radiusKm float64
	logger   logger.Logger
}

func New(source RecommendationSource, geocoder Geocoder, resolver ReferenceResolver,
	sessions *state.SessionStore, opts Options, log logger.Logger) *Orchestrator {
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	if opts.RadiusKm <= 0 {
		opts.RadiusKm = domain.DefaultPlausibleKm
	}
	return &Orchestrator{
		source:   source,
		geocoder: geocoder,
		resolver: resolver,
		sessions: sessions,
		delay:    opts.Delay,
		parallel: opts.Parallel,
		radiusKm: opts.RadiusKm,
		logger:   log,
	}
}

// Search begins a new session for a city and runs the pipeline in the
// background. The returned token identifies the session; progress is
// observable through the session store.
func (o *Orchestrator) Search(city string) uint64 {
	token := o.sessions.Begin(city)
	go o.run(context.Background(), token, city)
	return token
}

func (o *Orchestrator) run(ctx context.Context, token uint64, city string) {
	pois, err := o.source.Recommendations(ctx, city)
	if err != nil {
		// Nothing to enrich without the batch. Fatal for this session.
		o.logger.Error("recommendation fetch failed",
			logger.String("city", city),
			logger.Error(err))
		o.sessions.Fail(token)
		return
	}
	if !o.sessions.SetBatch(token, pois) {
		return
	}

	anchor := o.anchorCity(ctx, city)
	if !o.sessions.SetAnchor(token, anchor) {
		return
	}
	if !o.sessions.SetStatus(token, state.StatusEnriching) {
		return
	}

	sem := make(chan struct{}, o.parallel)
	var wg sync.WaitGroup
	for _, poi := range pois {
		if o.sessions.Token() != token {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(poi domain.POI) {
			defer wg.Done()
			defer func() { <-sem }()
			enriched := o.enrichOne(ctx, city, anchor, poi)
			o.sessions.UpdatePOI(token, poi.Name, enriched)
		}(poi)
		if o.delay > 0 {
			time.Sleep(o.delay)
		}
	}
	wg.Wait()

	o.sessions.SetStatus(token, state.StatusDone)
}

// anchorCity geocodes the city itself. A miss is tolerated and leaves
// the distance filter permissive.
func (o *Orchestrator) anchorCity(ctx context.Context, city string) *domain.Coordinate {
	place, err := o.geocoder.Locate(ctx, city)
	if err != nil {
		o.logger.Warn("city anchor geocode missed",
			logger.String("city", city),
			logger.Error(err))
		return nil
	}
	anchor := place.Coordinate
	return &anchor
}

// enrichOne merges the three sources for one entry. Priorities:
// coordinate from the geocoder, else the article, else the raw entry;
// display name from the geocoder when it returns one; description from
// the article extract when present.
func (o *Orchestrator) enrichOne(ctx context.Context, city string,
	anchor *domain.Coordinate, poi domain.POI) domain.POI {

	var article *domain.Article
	if poi.Category.NeedsReference() {
		a, err := o.resolver.Resolve(ctx, poi.Name, city, poi.EnglishName, anchor)
		switch {
		case err == nil:
			article = a
		case errors.Is(err, context.Canceled):
		default:
			o.logger.Debug("no reference article",
				logger.String("poi", poi.Name),
				logger.Error(err))
		}
	}

	place, err := o.geocoder.LocatePlace(ctx, poi.Name, city)
	if err != nil && poi.EnglishName != "" {
		place, err = o.geocoder.LocatePlace(ctx, poi.EnglishName, city)
	}
	if err != nil {
		place = nil
	}

	if place != nil {
		coord := place.Coordinate
		poi.Coordinate = &coord
		if place.Name != "" {
			poi.DisplayName = place.Name
		}
	} else if article != nil && article.Coordinate != nil {
		poi.Coordinate = article.Coordinate
	}
	if poi.DisplayName == "" {
		poi.DisplayName = poi.Name
	}

	if article != nil {
		poi.ReferenceLink = article.URL
		if article.Extract != "" {
			poi.Description = article.Extract
		}
		if article.ImageURL != "" {
			poi.ImageURL = article.ImageURL
		}
	}

	// An implausible coordinate keeps the textual enrichment but gets
	// no marker on the map.
	if poi.Coordinate != nil {
		poi.HasLocation = domain.Plausible(anchor, *poi.Coordinate, o.radiusKm)
		if !poi.HasLocation {
			o.logger.Debug("coordinate outside plausibility radius",
				logger.String("poi", poi.Name),
				logger.Float64("lat", poi.Coordinate.Lat),
				logger.Float64("lon", poi.Coordinate.Lon))
		}
	}
	return poi
}
