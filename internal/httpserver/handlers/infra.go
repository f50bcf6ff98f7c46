package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
)

type componentStatus struct {
	OK           bool   `json:"ok"`
	CitiesLoaded *int   `json:"cities_loaded,omitempty"`
	LastReload   string `json:"last_reload,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Impact       string `json:"impact,omitempty"`
	Error        string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		citiesCount := d.Cities.Count()
		lastReload := d.Cities.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"upstream": {
				OK:           citiesCount > 0,
				CitiesLoaded: &citiesCount,
				LastReload:   lastReloadStr,
			},
			"cache": checkCache(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if up, exists := components["upstream"]; exists && !up.OK {
		// No city list means no searches can be served.
		return "critical"
	}
	if cache, exists := components["cache"]; exists && !cache.OK {
		// Lookups still work, every one hits the providers directly.
		return "degraded"
	}
	return "optimal"
}

func checkCache(d deps.Deps) componentStatus {
	if d.Cache == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "lookup-caching-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.Cache.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "lookup-caching-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "lookup-caching-enabled",
	}
}
