package session

import (
	"sync"
	"time"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/basket"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/google/uuid"
)

const (
	// DefaultTTL is how long an idle storefront session keeps its basket.
	DefaultTTL = 2 * time.Hour

	// cleanupInterval is how often the background eviction runs.
	cleanupInterval = 5 * time.Minute
)

// Session owns one customer's basket. Baskets live only in memory and
// are discarded when the session expires; nothing is shared between
// sessions. All basket access goes through the session mutex, which
// serializes basket mutations the way the original single-threaded
// event loop did. The mutex is never held across a store call, so an
// edit arriving during checkout's settings fetch lands on the live
// basket and is picked up when the gate re-reads it.
type Session struct {
	ID string

	mu     sync.Mutex
	basket *basket.Basket
}

func newSession() *Session {
	return &Session{
		ID:     uuid.New().String(),
		basket: basket.New(),
	}
}

func (s *Session) RefreshCatalog(items []domain.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basket.Refresh(items)
}

func (s *Session) AddItem(itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.AddItem(itemID)
}

func (s *Session) ChangeQuantity(itemID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.ChangeQuantity(itemID, delta)
}

func (s *Session) Lines() []basket.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.Lines()
}

func (s *Session) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.LineCount()
}

func (s *Session) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.ItemCount()
}

func (s *Session) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.Total()
}

// Snapshot returns lines and total under one lock acquisition. Checkout
// and rendering read through this so a concurrent edit can never land
// between the two reads and produce a total that disagrees with the
// lines.
func (s *Session) Snapshot() ([]basket.Line, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.Snapshot()
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basket.Clear()
}

// Manager issues sessions and evicts idle ones in the background.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	lastSeen map[string]time.Time
	ttl      time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		sessions:    make(map[string]*Session),
		lastSeen:    make(map[string]time.Time),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) evictIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.ttl)
	for id, seen := range m.lastSeen {
		if seen.Before(cutoff) {
			delete(m.sessions, id)
			delete(m.lastSeen, id)
		}
	}
}

// Get returns the session for id, marking it as recently used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if ok {
		m.lastSeen[id] = time.Now()
	}
	return s, ok
}

// Create issues a fresh session with an empty basket.
func (m *Manager) Create() *Session {
	s := newSession()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.lastSeen[s.ID] = time.Now()
	return s
}

func (m *Manager) Close() {
	close(m.stopCleanup)
	m.wg.Wait()
}
