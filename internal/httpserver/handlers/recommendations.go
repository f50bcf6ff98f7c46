package handlers

import (
	"net/http"

	"github.com/davmoraru/wayfind/internal/domain"
	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/state"
)

type recommendationsResponse struct {
	Token  uint64             `json:"token"`
	City   string             `json:"city"`
	Status state.Status       `json:"status"`
	Anchor *domain.Coordinate `json:"anchor,omitempty"`
	POIs   []domain.POI       `json:"pois"`
}

// Recommendations serves the current session view. Clients poll this
// while the pipeline runs; entries flip from raw to enriched in place.
func Recommendations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Sessions.Snapshot()
		writeJSON(w, http.StatusOK, recommendationsResponse{
			Token:  snap.Token,
			City:   snap.City,
			Status: snap.Status,
			Anchor: snap.Anchor,
			POIs:   snap.POIs,
		})
	}
}
