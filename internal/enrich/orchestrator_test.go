package enrich

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/davmoraru/wayfind/internal/domain"
	"github.com/davmoraru/wayfind/internal/logger"
	"github.com/davmoraru/wayfind/internal/state"
)

type fakeSource struct {
	batches map[string][]domain.POI
	err     error
}

func (f *fakeSource) Recommendations(_ context.Context, city string) ([]domain.POI, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.batches[city], nil
}

type fakeGeocoder struct {
	mu      sync.Mutex
	anchors map[string]*domain.Place // city query -> anchor
	places  map[string]*domain.Place // POI name -> place
	queries []string
}

func (f *fakeGeocoder) Locate(_ context.Context, query string) (*domain.Place, error) {
	if p, ok := f.anchors[query]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeGeocoder) LocatePlace(_ context.Context, name, _ string) (*domain.Place, error) {
	f.mu.Lock()
	f.queries = append(f.queries, name)
	f.mu.Unlock()
	if p, ok := f.places[name]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

type fakeResolver struct {
	mu       sync.Mutex
	articles map[string]*domain.Article // POI name -> article
	resolved []string
}

func (f *fakeResolver) Resolve(_ context.Context, poiName, _, _ string, _ *domain.Coordinate) (*domain.Article, error) {
	f.mu.Lock()
	f.resolved = append(f.resolved, poiName)
	f.mu.Unlock()
	if a, ok := f.articles[poiName]; ok {
		return a, nil
	}
	return nil, errors.New("not found")
}

func newOrchestrator(source *fakeSource, geo *fakeGeocoder, res *fakeResolver, sessions *state.SessionStore) *Orchestrator {
	return New(source, geo, res, sessions, Options{Parallel: 1}, logger.New("error", false))
}

func TestOrchestrator_CategoryGating(t *testing.T) {
	source := &fakeSource{batches: map[string][]domain.POI{
		"Iasi": {
			{Name: "Palatul Culturii", Category: domain.CategoryTouristAttraction},
			{Name: "Casa Bolta Rece", Category: domain.CategoryRestaurant},
			{Name: "Hotel Unirea", Category: domain.CategoryHotel},
		},
	}}
	geo := &fakeGeocoder{anchors: map[string]*domain.Place{}, places: map[string]*domain.Place{}}
	res := &fakeResolver{articles: map[string]*domain.Article{}}
	sessions := state.NewSessionStore()
	o := newOrchestrator(source, geo, res, sessions)

	tok := sessions.Begin("Iasi")
	o.run(context.Background(), tok, "Iasi")

	if len(res.resolved) != 1 || res.resolved[0] != "Palatul Culturii" {
		t.Errorf("resolver saw %v, want only the tourist attraction", res.resolved)
	}
	// Non-attraction entries still go through the geocoder.
	if len(geo.queries) != 3 {
		t.Errorf("geocoder saw %d queries, want all 3 entries", len(geo.queries))
	}
}

func TestOrchestrator_MergePriorities(t *testing.T) {
	source := &fakeSource{batches: map[string][]domain.POI{
		"Iasi": {
			{Name: "Palatul Culturii", Category: domain.CategoryTouristAttraction, Description: "raw description"},
			{Name: "Gradina Botanica", Category: domain.CategoryTouristAttraction},
		},
	}}
	geo := &fakeGeocoder{
		anchors: map[string]*domain.Place{
			"Iasi": {Coordinate: domain.Coordinate{Lat: 47.1585, Lon: 27.6014}},
		},
		places: map[string]*domain.Place{
			"Palatul Culturii": {Name: "Palace of Culture", Coordinate: domain.Coordinate{Lat: 47.1570, Lon: 27.5870}},
		},
	}
	res := &fakeResolver{articles: map[string]*domain.Article{
		"Palatul Culturii": {
			Title:      "Palace of Culture (Iasi)",
			URL:        "https://en.wikipedia.org/wiki/Palace_of_Culture_(Ia%C8%99i)",
			Coordinate: &domain.Coordinate{Lat: 47.0, Lon: 27.0},
			Extract:    "The Palace of Culture is an emblematic building.",
			ImageURL:   "https://upload.example.org/palace.jpg",
		},
		"Gradina Botanica": {
			Title:      "Iasi Botanical Garden",
			URL:        "https://en.wikipedia.org/wiki/Ia%C8%99i_Botanical_Garden",
			Coordinate: &domain.Coordinate{Lat: 47.1756, Lon: 27.5534},
		},
	}}
	sessions := state.NewSessionStore()
	o := newOrchestrator(source, geo, res, sessions)

	tok := sessions.Begin("Iasi")
	o.run(context.Background(), tok, "Iasi")

	snap := sessions.Snapshot()
	if snap.Status != state.StatusDone {
		t.Fatalf("status = %q, want done", snap.Status)
	}

	palace := snap.POIs[0]
	if palace.Coordinate.Lat != 47.1570 {
		t.Errorf("geocoder coordinate must win over the article's, got %+v", palace.Coordinate)
	}
	if palace.DisplayName != "Palace of Culture" {
		t.Errorf("display name = %q, want the geocoder's normalized name", palace.DisplayName)
	}
	if palace.Description != "The Palace of Culture is an emblematic building." {
		t.Errorf("description = %q, want the article extract", palace.Description)
	}
	if palace.ReferenceLink == "" || palace.ImageURL == "" {
		t.Error("link and image must come from the article")
	}
	if !palace.HasLocation {
		t.Error("plausible coordinate must yield a marker")
	}

	garden := snap.POIs[1]
	if garden.Coordinate == nil || garden.Coordinate.Lat != 47.1756 {
		t.Errorf("article coordinate must fill a geocoder miss, got %+v", garden.Coordinate)
	}
	if garden.DisplayName != "Gradina Botanica" {
		t.Errorf("display name = %q, want the raw name on geocoder miss", garden.DisplayName)
	}
}

func TestOrchestrator_ImplausibleCoordinateKeepsText(t *testing.T) {
	source := &fakeSource{batches: map[string][]domain.POI{
		"Givet": {{Name: "Old Fort", Category: domain.CategoryTouristAttraction}},
	}}
	geo := &fakeGeocoder{
		anchors: map[string]*domain.Place{
			"Givet": {Coordinate: domain.Coordinate{Lat: 50.1380, Lon: 4.8256}},
		},
		places: map[string]*domain.Place{
			// A homonym some 250 km away.
			"Old Fort": {Coordinate: domain.Coordinate{Lat: 48.0, Lon: 2.0}},
		},
	}
	res := &fakeResolver{articles: map[string]*domain.Article{
		"Old Fort": {Title: "Old Fort (Givet)", URL: "https://en.wikipedia.org/wiki/Old_Fort", Extract: "A fort."},
	}}
	sessions := state.NewSessionStore()
	o := newOrchestrator(source, geo, res, sessions)

	tok := sessions.Begin("Givet")
	o.run(context.Background(), tok, "Givet")

	poi := sessions.Snapshot().POIs[0]
	if poi.HasLocation {
		t.Error("implausible coordinate must not produce a marker")
	}
	if poi.ReferenceLink == "" || poi.Description == "" {
		t.Error("textual enrichment must survive the distance rejection")
	}
}

func TestOrchestrator_AnchorMissIsPermissive(t *testing.T) {
	source := &fakeSource{batches: map[string][]domain.POI{
		"Atlantis": {{Name: "Sunken Palace", Category: domain.CategoryTouristAttraction}},
	}}
	geo := &fakeGeocoder{
		anchors: map[string]*domain.Place{}, // city itself cannot be geocoded
		places: map[string]*domain.Place{
			"Sunken Palace": {Coordinate: domain.Coordinate{Lat: 10.0, Lon: 10.0}},
		},
	}
	res := &fakeResolver{articles: map[string]*domain.Article{}}
	sessions := state.NewSessionStore()
	o := newOrchestrator(source, geo, res, sessions)

	tok := sessions.Begin("Atlantis")
	o.run(context.Background(), tok, "Atlantis")

	snap := sessions.Snapshot()
	if snap.Anchor != nil {
		t.Error("anchor must stay nil on a city geocode miss")
	}
	if !snap.POIs[0].HasLocation {
		t.Error("nil anchor must leave the distance filter permissive")
	}
}

func TestOrchestrator_SourceFailureFailsSession(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	geo := &fakeGeocoder{anchors: map[string]*domain.Place{}, places: map[string]*domain.Place{}}
	res := &fakeResolver{articles: map[string]*domain.Article{}}
	sessions := state.NewSessionStore()
	o := newOrchestrator(source, geo, res, sessions)

	tok := sessions.Begin("Iasi")
	o.run(context.Background(), tok, "Iasi")

	snap := sessions.Snapshot()
	if snap.Status != state.StatusFailed {
		t.Errorf("status = %q, want failed", snap.Status)
	}
	if len(snap.POIs) != 0 {
		t.Error("a failed batch must leave no partial markers")
	}
}

func TestOrchestrator_SupersededRunLeavesNoTrace(t *testing.T) {
	source := &fakeSource{batches: map[string][]domain.POI{
		"Iasi": {{Name: "Palatul Culturii", Category: domain.CategoryTouristAttraction}},
		"Cluj": {{Name: "Biserica Sfantul Mihail", Category: domain.CategoryTouristAttraction}},
	}}
	geo := &fakeGeocoder{anchors: map[string]*domain.Place{}, places: map[string]*domain.Place{}}
	res := &fakeResolver{articles: map[string]*domain.Article{}}
	sessions := state.NewSessionStore()
	o := newOrchestrator(source, geo, res, sessions)

	older := sessions.Begin("Iasi")
	newer := sessions.Begin("Cluj")

	// The older run completes its in-flight work after being superseded;
	// every one of its mutations must be dropped at the store boundary.
	o.run(context.Background(), older, "Iasi")
	o.run(context.Background(), newer, "Cluj")

	snap := sessions.Snapshot()
	if snap.City != "Cluj" {
		t.Errorf("city = %q, want the newer session's", snap.City)
	}
	if len(snap.POIs) != 1 || snap.POIs[0].Name != "Biserica Sfantul Mihail" {
		t.Errorf("POIs = %v, want only the newer session's batch", snap.POIs)
	}
	if snap.Status != state.StatusDone {
		t.Errorf("status = %q, want done for the newer session", snap.Status)
	}
}
