package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/httpserver/handlers"
	"github.com/davmoraru/wayfind/internal/httpserver/mw"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	// Every search fans out to third-party providers, hence the tight
	// per-IP budget here.
	r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.RateLimitBurst,
		RefillPerMin: d.RateLimitPerMin,
		TrustProxy:   d.TrustProxy,
	})).Get("/search", handlers.Search(d))

	r.Get("/recommendations", handlers.Recommendations(d))
	r.Get("/cities", handlers.Cities(d))
}
