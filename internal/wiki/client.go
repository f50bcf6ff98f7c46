package wiki

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const userAgent = "wayfind/0.1 (city recommendation service)"

// client talks to a MediaWiki-style action API, one endpoint per
// language edition.
type client struct {
	apiFormat string // URL with %s replaced by the language code
	http      *http.Client
}

// searchHit is one full-text search result.
type searchHit struct {
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	WordCount int    `json:"wordcount"`
	PageID    int    `json:"pageid"`
}

type searchResponse struct {
	Query struct {
		Search []searchHit `json:"search"`
	} `json:"query"`
}

// pageDetail is the lazily fetched payload for one candidate.
type pageDetail struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	Coordinates []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coordinates"`
}

type detailResponse struct {
	Query struct {
		Pages map[string]pageDetail `json:"pages"`
	} `json:"query"`
}

func (c *client) endpoint(lang string) string {
	return fmt.Sprintf(c.apiFormat, lang)
}

// articleURL derives the human-readable page URL from the API endpoint.
// Example: https://en.wikipedia.org/w/api.php -> https://en.wikipedia.org/wiki/<title>
func (c *client) articleURL(lang, title string) string {
	base := strings.TrimSuffix(c.endpoint(lang), "/w/api.php")
	return base + "/wiki/" + url.PathEscape(title)
}

func (c *client) search(ctx context.Context, lang, term string, limit int) ([]searchHit, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {term},
		"srlimit":  {strconv.Itoa(limit)},
		"format":   {"json"},
	}

	var decoded searchResponse
	if err := c.get(ctx, c.endpoint(lang)+"?"+params.Encode(), &decoded); err != nil {
		return nil, err
	}
	return decoded.Query.Search, nil
}

func (c *client) detail(ctx context.Context, lang string, pageID int) (*pageDetail, error) {
	params := url.Values{
		"action":      {"query"},
		"pageids":     {strconv.Itoa(pageID)},
		"prop":        {"pageimages|extracts|coordinates"},
		"pithumbsize": {"400"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"format":      {"json"},
	}

	var decoded detailResponse
	if err := c.get(ctx, c.endpoint(lang)+"?"+params.Encode(), &decoded); err != nil {
		return nil, err
	}

	page, ok := decoded.Query.Pages[strconv.Itoa(pageID)]
	if !ok {
		return nil, fmt.Errorf("page %d missing from detail response", pageID)
	}
	return &page, nil
}

func (c *client) get(ctx context.Context, u string, out any) error {
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
