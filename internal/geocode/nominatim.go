package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/davmoraru/wayfind/internal/domain"
)

// nominatimClient talks to a Nominatim-style search/reverse API.
// Coordinates come back as decimal strings, not numbers.
type nominatimClient struct {
	baseURL string
	http    *http.Client
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type nominatimReverseResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Hamlet  string `json:"hamlet"`
		Country string `json:"country"`
	} `json:"address"`
}

func (c *nominatimClient) name() string { return "nominatim" }

func (c *nominatimClient) search(ctx context.Context, query string) (*domain.Place, error) {
	u := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(query))

	var results []nominatimResult
	if err := c.get(ctx, u, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("empty result set for %q", query)
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return nil, fmt.Errorf("unparsable coordinates for %q", query)
	}

	return &domain.Place{
		Name:       results[0].Name,
		Coordinate: domain.Coordinate{Lat: lat, Lon: lon},
	}, nil
}

func (c *nominatimClient) reverse(ctx context.Context, coord domain.Coordinate) (*domain.Address, error) {
	u := fmt.Sprintf("%s/reverse?format=json&lat=%s&lon=%s",
		c.baseURL,
		url.QueryEscape(strconv.FormatFloat(coord.Lat, 'f', -1, 64)),
		url.QueryEscape(strconv.FormatFloat(coord.Lon, 'f', -1, 64)))

	var result nominatimReverseResult
	if err := c.get(ctx, u, &result); err != nil {
		return nil, err
	}
	if result.DisplayName == "" {
		return nil, fmt.Errorf("no address at %f,%f", coord.Lat, coord.Lon)
	}

	addr := &domain.Address{
		Country:     result.Address.Country,
		DisplayName: result.DisplayName,
	}
	// Best available settlement name, largest first.
	for _, v := range []string{result.Address.City, result.Address.Town, result.Address.Village, result.Address.Hamlet} {
		if v != "" {
			addr.Locality = v
			break
		}
	}
	return addr, nil
}

func (c *nominatimClient) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

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
