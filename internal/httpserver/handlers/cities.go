package handlers

import (
	"net/http"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
)

// Cities returns the supported city names as a flat JSON array, the
// shape the map frontend's city picker expects.
func Cities(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Cities.All())
	}
}
