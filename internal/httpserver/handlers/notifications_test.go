package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/logger"
	"github.com/davmoraru/wayfind/internal/notify"
)

func notificationRouter(d deps.Deps) http.Handler {
	r := chi.NewRouter()
	r.Get("/notifications", Notifications(d))
	r.Delete("/notifications", ClearNotifications(d))
	r.Post("/notifications/panel", TogglePanel(d))
	r.Get("/notifications/toasts", Toasts(d))
	r.Delete("/notifications/{id}", DismissNotification(d))
	return r
}

func TestNotificationEndpoints(t *testing.T) {
	log := logger.New("error", false)
	notifier := notify.NewManager(time.Minute, log)
	d := deps.Deps{Logger: log, Notifier: notifier}
	router := notificationRouter(d)

	first := notifier.OnMessage("first alert")
	notifier.OnMessage("second alert")

	// History comes back newest first with the unread count.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /notifications = %d", rec.Code)
	}
	var listResp notificationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if listResp.Unread != 2 || len(listResp.Notifications) != 2 {
		t.Errorf("unread = %d, entries = %d", listResp.Unread, len(listResp.Notifications))
	}
	if listResp.Notifications[0].Message != "second alert" {
		t.Errorf("history not newest first: %v", listResp.Notifications)
	}

	// Opening the panel zeroes the counter.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notifications/panel", nil))
	var panelResp panelResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &panelResp)
	if !panelResp.PanelOpen || panelResp.Unread != 0 {
		t.Errorf("panel response = %+v", panelResp)
	}

	// Dismissing a known id removes it; a second attempt misses.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/notifications/"+first.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE known id = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/notifications/"+first.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("DELETE unknown id = %d", rec.Code)
	}

	// Toasts are visible until their TTL runs out.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications/toasts", nil))
	var toasts []notify.Notification
	_ = json.Unmarshal(rec.Body.Bytes(), &toasts)
	if len(toasts) != 1 {
		t.Errorf("toasts = %d, want 1 after dismissing the other", len(toasts))
	}

	// Clear wipes everything.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/notifications", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE /notifications = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	_ = json.Unmarshal(rec.Body.Bytes(), &listResp)
	if len(listResp.Notifications) != 0 {
		t.Error("history must be empty after clear")
	}
}

func TestSearchRequiresCity(t *testing.T) {
	log := logger.New("error", false)
	d := deps.Deps{Logger: log}

	rec := httptest.NewRecorder()
	Search(d)(rec, httptest.NewRequest(http.MethodGet, "/search", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("GET /search without city = %d, want 400", rec.Code)
	}
}
