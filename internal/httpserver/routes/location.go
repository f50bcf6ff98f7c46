package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/httpserver/handlers"
)

func init() { Register(registerLocation) }

func registerLocation(r chi.Router, d deps.Deps) {
	r.Post("/location", handlers.Location(d))
}
