package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/httpserver/handlers"
)

func init() { Register(registerGeocode) }

func registerGeocode(r chi.Router, d deps.Deps) {
	r.Get("/geocode/reverse", handlers.ReverseGeocode(d))
}
