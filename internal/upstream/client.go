// Package upstream talks to the recommendation source that supplies the
// raw, unenriched POI batches per city.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/davmoraru/wayfind/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Options configures the client.
type Options struct {
	BaseURL string // e.g. http://localhost:8080/api/v1
	Timeout time.Duration
}

// Client fetches recommendation batches and city lists. A failure here
// is fatal for the calling session: there is nothing to enrich without
// the raw batch.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		baseURL: opts.BaseURL,
		http:    &http.Client{Timeout: opts.Timeout},
	}
}

// recommendationDTO mirrors the source payload. Coordinates are
// optional; most entries arrive without them.
type recommendationDTO struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	EnglishName   string   `json:"englishName"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Lat           *float64 `json:"lat"`
	Lon           *float64 `json:"lon"`
	WikipediaLink string   `json:"wikipediaLink"`
	ImageURL      string   `json:"imageUrl"`
}

// LocationUpdate is a user-reported position forwarded to the source's
// suggestion endpoint.
type LocationUpdate struct {
	City         string  `json:"city"`
	LocationName string  `json:"locationName"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// Recommendations returns the raw POI batch for a city, in source order.
func (c *Client) Recommendations(ctx context.Context, city string) ([]domain.POI, error) {
	var dtos []recommendationDTO
	if err := c.get(ctx, c.baseURL+"/Recommandations/"+url.PathEscape(city), &dtos); err != nil {
		return nil, fmt.Errorf("fetching recommendations for %q: %w", city, err)
	}

	pois := make([]domain.POI, 0, len(dtos))
	for _, d := range dtos {
		poi := domain.POI{
			Name:        d.Name,
			EnglishName: d.EnglishName,
			Description: d.Description,
			Category:    domain.ParseCategory(d.Category),
		}
		if d.Lat != nil && d.Lon != nil {
			poi.Coordinate = &domain.Coordinate{Lat: *d.Lat, Lon: *d.Lon}
		}
		pois = append(pois, poi)
	}
	return pois, nil
}

// Cities returns the list of supported city names.
func (c *Client) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	if err := c.get(ctx, c.baseURL+"/Recommandations/cities", &cities); err != nil {
		return nil, fmt.Errorf("fetching city list: %w", err)
	}
	return cities, nil
}

// SuggestLocation forwards a user position so the source can produce a
// location-aware suggestion on its own channel.
func (c *Client) SuggestLocation(ctx context.Context, loc LocationUpdate) error {
	body, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("encoding location update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/Recommandations/suggestions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
