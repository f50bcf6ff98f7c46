package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
)

// Registrar mounts one route group on the router. Route files register
// themselves from init(), so adding an endpoint never touches server.go.
type Registrar func(r chi.Router, d deps.Deps)

var registrars []Registrar

func Register(reg Registrar) {
	registrars = append(registrars, reg)
}

// RegisterAll mounts every registered group. Called once from server.New.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registrars {
		reg(r, d)
	}
}
