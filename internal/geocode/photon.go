package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/davmoraru/wayfind/internal/domain"
)

// photonClient talks to a Photon-style geocoding API.
// Results are GeoJSON features with [lon, lat] coordinate ordering.
type photonClient struct {
	baseURL string
	http    *http.Client
}

type photonResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

func (c *photonClient) name() string { return "photon" }

func (c *photonClient) search(ctx context.Context, query string) (*domain.Place, error) {
	u := fmt.Sprintf("%s/api?limit=1&q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(decoded.Features) == 0 || len(decoded.Features[0].Geometry.Coordinates) < 2 {
		return nil, fmt.Errorf("empty result set for %q", query)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	return &domain.Place{
		Name: decoded.Features[0].Properties.Name,
		// GeoJSON ordering: longitude first.
		Coordinate: domain.Coordinate{Lat: coords[1], Lon: coords[0]},
	}, nil
}
