package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meur/gscheck/internal/catalog"
	"github.com/meur/gscheck/internal/chart"
)

// DefaultIdleTimeout is how long an unused session is kept
const DefaultIdleTimeout = 30 * time.Minute

// Manager keeps the sessions of all connected viewers. It is safe for
// concurrent use.
type Manager struct {
	catalog  *catalog.Catalog
	viewport chart.Viewport
	idle     time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu       sync.Mutex // serializes commands on session
	session  *Session
	lastSeen time.Time // guarded by Manager.mu
}

// NewManager creates a manager whose sessions start on vp. A zero idle
// duration uses DefaultIdleTimeout.
func NewManager(c *catalog.Catalog, vp chart.Viewport, idle time.Duration) *Manager {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Manager{
		catalog:  c,
		viewport: vp,
		idle:     idle,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Create starts a new session and returns its first view
func (m *Manager) Create() View {
	now := m.now()
	s := New(uuid.NewString(), m.catalog, m.viewport)

	m.mu.Lock()
	m.sweepLocked(now)
	m.sessions[s.ID()] = &entry{session: s, lastSeen: now}
	m.mu.Unlock()

	return s.View()
}

// Do runs fn on the session id while holding the session lock. It reports
// false when the session does not exist or has expired.
func (m *Manager) Do(id string, fn func(*Session) View) (View, bool) {
	now := m.now()

	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok && now.Sub(e.lastSeen) > m.idle {
		delete(m.sessions, id)
		ok = false
	}
	if ok {
		e.lastSeen = now
	}
	m.mu.Unlock()
	if !ok {
		return View{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session), true
}

// Delete ends a session
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweepLocked(now time.Time) {
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.idle {
			delete(m.sessions, id)
		}
	}
}
