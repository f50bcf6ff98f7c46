package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/notify"
)

type notificationsResponse struct {
	Notifications []notify.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
	PanelOpen     bool                  `json:"panelOpen"`
}

type panelResponse struct {
	PanelOpen bool `json:"panelOpen"`
	Unread    int  `json:"unread"`
}

// Notifications returns the buffered history, newest first.
func Notifications(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, unread := d.Notifier.Notifications()
		writeJSON(w, http.StatusOK, notificationsResponse{
			Notifications: history,
			Unread:        unread,
			PanelOpen:     d.Notifier.PanelOpen(),
		})
	}
}

// TogglePanel flips the panel; opening it marks everything read.
func TogglePanel(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		open := d.Notifier.TogglePanel()
		_, unread := d.Notifier.Notifications()
		writeJSON(w, http.StatusOK, panelResponse{PanelOpen: open, Unread: unread})
	}
}

// DismissNotification removes one entry and cancels its toast.
func DismissNotification(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !d.Notifier.Dismiss(id) {
			writeError(w, http.StatusNotFound, "unknown notification id")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearNotifications wipes the history and pending toasts.
func ClearNotifications(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Notifier.ClearAll()
		w.WriteHeader(http.StatusNoContent)
	}
}

// Toasts lists the currently visible transient popups.
func Toasts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Notifier.Toasts())
	}
}
