package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/httpserver/handlers"
)

func init() { Register(registerNotifications) }

func registerNotifications(r chi.Router, d deps.Deps) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", handlers.Notifications(d))
		r.Delete("/", handlers.ClearNotifications(d))
		r.Post("/panel", handlers.TogglePanel(d))
		r.Get("/toasts", handlers.Toasts(d))
		r.Delete("/{id}", handlers.DismissNotification(d))
	})
}
