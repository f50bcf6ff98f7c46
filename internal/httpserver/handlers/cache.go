package handlers

import (
	"net/http"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/logger"
)

// FlushCache drops every cached geocode and article lookup so the next
// enrichment run hits the external providers again.
func FlushCache(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Cache == nil {
			writeError(w, http.StatusServiceUnavailable, "lookup cache disabled")
			return
		}
		if err := d.Cache.FlushLookups(r.Context()); err != nil {
			d.Logger.Error("cache flush failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "cache flush failed")
			return
		}
		d.Logger.Info("lookup cache flushed",
			logger.String("remote_ip", r.RemoteAddr))
		w.WriteHeader(http.StatusNoContent)
	}
}
