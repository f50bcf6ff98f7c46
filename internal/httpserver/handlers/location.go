package handlers

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/logger"
	"github.com/davmoraru/wayfind/internal/upstream"
)

// Location accepts a user position update, publishes it on the push
// channel and forwards it to the recommendation source so it can react
// with a location-aware suggestion.
func Location(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var loc upstream.LocationUpdate
		if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
			writeError(w, http.StatusBadRequest, "invalid location payload")
			return
		}
		if strings.TrimSpace(loc.City) == "" {
			writeError(w, http.StatusBadRequest, "city is required")
			return
		}

		if d.Push != nil {
			payload, err := json.Marshal(loc)
			if err == nil {
				if err := d.Push.Publish(r.Context(), d.PushLocationTopic, string(payload)); err != nil {
					d.Logger.Warn("location publish failed", logger.Error(err))
				}
			}
		}

		if err := d.Upstream.SuggestLocation(r.Context(), loc); err != nil {
			d.Logger.Warn("location suggestion forward failed",
				logger.String("city", loc.City),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "suggestion forward failed")
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}
