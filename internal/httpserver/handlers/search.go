package handlers

import (
	"net/http"
	"strings"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/logger"
)

type searchResponse struct {
	Token  uint64 `json:"token"`
	City   string `json:"city"`
	Status string `json:"status"`
}

// Search starts a new enrichment session for a city. The previous
// session, if any, is superseded; its in-flight lookups finish but
// their results are dropped. Progress is polled via /recommendations.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := strings.TrimSpace(r.URL.Query().Get("city"))
		if city == "" {
			writeError(w, http.StatusBadRequest, "city is required")
			return
		}

		if d.Cities.Count() > 0 && !d.Cities.Contains(city) {
			d.Logger.Debug("search for a city outside the known list",
				logger.String("city", city))
		}

		token := d.Enricher.Search(city)
		d.Logger.Info("search started",
			logger.String("city", city),
			logger.Int64("token", int64(token)))

		writeJSON(w, http.StatusAccepted, searchResponse{
			Token:  token,
			City:   city,
			Status: "searching",
		})
	}
}
