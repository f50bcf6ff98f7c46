// Package state holds the current enrichment session: the active city,
// its anchor coordinate, and the progressively enriched POI list.
package state

import (
	"sync"
	"time"

	"github.com/davmoraru/wayfind/internal/domain"
)

// Status tracks where the active session is in its lifecycle.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusSearching Status = "searching"
	StatusEnriching Status = "enriching"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// Snapshot is a copy of the session view, safe to serve concurrently
// with an in-flight enrichment.
type Snapshot struct {
	Token  uint64
	City   string
	Anchor *domain.Coordinate
	Status Status
	POIs   []domain.POI
}

// SessionStore provides in-memory storage for the single active session.
// Every mutation carries the token minted by Begin; a mutation with a
// superseded token is dropped without error, so an overwritten search
// can finish its in-flight calls and die quietly.
type SessionStore struct {
	mu     sync.RWMutex
	token  uint64
	city   string
	anchor *domain.Coordinate
	status Status
	pois   []domain.POI
	order  map[string]int // POI name -> slice position
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		status: StatusIdle,
		order:  make(map[string]int),
	}
}

// Begin starts a new session for a city, superseding any prior one.
// It clears the previous POIs and anchor and returns the new token.
func (s *SessionStore) Begin(city string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++
	s.city = city
	s.anchor = nil
	s.status = StatusSearching
	s.pois = nil
	s.order = make(map[string]int)
	return s.token
}

// SetBatch installs the raw POI batch, preserving source order.
func (s *SessionStore) SetBatch(token uint64, pois []domain.POI) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		return false
	}
	s.pois = make([]domain.POI, len(pois))
	copy(s.pois, pois)
	s.order = make(map[string]int, len(pois))
	for i, p := range pois {
		s.order[p.Name] = i
	}
	return true
}

// SetAnchor records the city anchor coordinate. A nil anchor is valid
// and leaves the distance filter permissive.
func (s *SessionStore) SetAnchor(token uint64, anchor *domain.Coordinate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		return false
	}
	s.anchor = anchor
	return true
}

// SetStatus moves the session through its lifecycle.
func (s *SessionStore) SetStatus(token uint64, status Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		return false
	}
	s.status = status
	return true
}

// Fail marks the session failed and resets the city view so no partial
// results from the broken batch survive. The city itself is cleared
// too: a failed session has no active view.
func (s *SessionStore) Fail(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		return false
	}
	s.status = StatusFailed
	s.city = ""
	s.pois = nil
	s.order = make(map[string]int)
	s.anchor = nil
	return true
}

// UpdatePOI replaces one entry by name. The name is the batch-local
// identity, so lookups survive the enrichment renaming the display
// fields.
func (s *SessionStore) UpdatePOI(token uint64, name string, poi domain.POI) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		return false
	}
	i, ok := s.order[name]
	if !ok {
		return false
	}
	poi.UpdatedAt = time.Now()
	s.pois[i] = poi
	return true
}

// Token returns the currently active session token.
func (s *SessionStore) Token() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Snapshot returns a defensive copy of the current view.
func (s *SessionStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pois := make([]domain.POI, len(s.pois))
	copy(pois, s.pois)
	return Snapshot{
		Token:  s.token,
		City:   s.city,
		Anchor: s.anchor,
		Status: s.status,
		POIs:   pois,
	}
}
