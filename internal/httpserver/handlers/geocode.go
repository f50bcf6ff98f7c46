package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/davmoraru/wayfind/internal/domain"
	"github.com/davmoraru/wayfind/internal/geocode"
	"github.com/davmoraru/wayfind/internal/httpserver/deps"
)

// ReverseGeocode resolves lat/lon query params to an address.
func ReverseGeocode(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
		if errLat != nil || errLon != nil {
			writeError(w, http.StatusBadRequest, "lat and lon are required numbers")
			return
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			writeError(w, http.StatusBadRequest, "lat/lon out of range")
			return
		}

		addr, err := d.Geocoder.ReverseLocate(r.Context(), domain.Coordinate{Lat: lat, Lon: lon})
		if err != nil {
			if errors.Is(err, geocode.ErrNotFound) {
				writeError(w, http.StatusNotFound, "no address at this position")
				return
			}
			writeError(w, http.StatusBadGateway, "reverse lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, addr)
	}
}
