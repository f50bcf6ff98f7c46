// Package notify buffers asynchronous push events into a notification
// history with an unread counter and short-lived toast popups.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/davmoraru/wayfind/internal/logger"
)

const DefaultToastTTL = 5 * time.Second

// Notification is one buffered event.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

// Manager owns the history, the unread counter, the panel state and the
// active toasts. Every entry gets a unique id even when identical
// payloads arrive in the same instant.
type Manager struct {
	mu        sync.Mutex
	history   []Notification // newest first
	unread    int
	panelOpen bool
	toastTTL  time.Duration
	toasts    map[string]*toast
	logger    logger.Logger
}

type toast struct {
	notification Notification
	timer        *time.Timer
}

func NewManager(toastTTL time.Duration, log logger.Logger) *Manager {
	if toastTTL <= 0 {
		toastTTL = DefaultToastTTL
	}
	return &Manager{
		toastTTL: toastTTL,
		toasts:   make(map[string]*toast),
		logger:   log,
	}
}

// OnMessage records an incoming event: prepends it to the history,
// bumps the unread counter and shows a toast that expires on its own.
func (m *Manager) OnMessage(message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = append([]Notification{n}, m.history...)
	m.unread++

	t := &toast{notification: n}
	t.timer = time.AfterFunc(m.toastTTL, func() {
		m.expireToast(n.ID)
	})
	m.toasts[n.ID] = t

	m.logger.Debug("notification buffered", logger.String("id", n.ID))
	return n
}

func (m *Manager) expireToast(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.toasts, id)
}

// TogglePanel flips the panel and returns its new state. Opening the
// panel counts as seeing everything: the whole history is marked read
// and the counter resets.
func (m *Manager) TogglePanel() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.panelOpen = !m.panelOpen
	if m.panelOpen {
		for i := range m.history {
			m.history[i].Read = true
		}
		m.unread = 0
	}
	return m.panelOpen
}

// Dismiss removes one entry from the history and cancels its toast
// timer if the toast is still showing.
func (m *Manager) Dismiss(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.toasts[id]; ok {
		t.timer.Stop()
		delete(m.toasts, id)
	}

	for i, n := range m.history {
		if n.ID != id {
			continue
		}
		if !n.Read && m.unread > 0 {
			m.unread--
		}
		m.history = append(m.history[:i], m.history[i+1:]...)
		return true
	}
	return false
}

// ClearAll wipes the history, the counter and every pending toast,
// and closes the panel.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, t := range m.toasts {
		t.timer.Stop()
		delete(m.toasts, id)
	}
	m.history = nil
	m.unread = 0
	m.panelOpen = false
}

// Notifications returns the history newest first plus the unread count.
func (m *Manager) Notifications() ([]Notification, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Notification, len(m.history))
	copy(out, m.history)
	return out, m.unread
}

// Toasts returns the currently visible toasts.
func (m *Manager) Toasts() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Notification, 0, len(m.toasts))
	for _, t := range m.toasts {
		out = append(out, t.notification)
	}
	return out
}

// PanelOpen reports the current panel state.
func (m *Manager) PanelOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.panelOpen
}
