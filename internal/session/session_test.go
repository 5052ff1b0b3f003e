package session

import (
	"testing"
	"time"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	s := m.Create()
	require.NotEmpty(t, s.ID)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("unknown")
	assert.False(t, ok)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	catalog := []domain.MenuItem{{ID: 10, Name: "Tea", Price: 20, IsAvailable: true}}

	first := m.Create()
	second := m.Create()
	first.RefreshCatalog(catalog)
	second.RefreshCatalog(catalog)

	require.NoError(t, first.AddItem(10))

	assert.Equal(t, 1, first.LineCount())
	assert.Equal(t, 0, second.LineCount())
}

func TestManager_EvictsIdleSessions(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	defer m.Close()

	s := m.Create()

	time.Sleep(30 * time.Millisecond)
	m.evictIdle()

	_, ok := m.Get(s.ID)
	assert.False(t, ok)
}

func TestManager_GetKeepsSessionAlive(t *testing.T) {
	m := NewManager(50 * time.Millisecond)
	defer m.Close()

	s := m.Create()

	time.Sleep(30 * time.Millisecond)
	_, ok := m.Get(s.ID)
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	m.evictIdle()

	_, ok = m.Get(s.ID)
	assert.True(t, ok)
}

func TestSession_BasketFlow(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	s := m.Create()
	s.RefreshCatalog([]domain.MenuItem{
		{ID: 10, Name: "Tea", Price: 20, IsAvailable: true},
	})

	require.NoError(t, s.AddItem(10))
	require.NoError(t, s.AddItem(10))
	assert.Equal(t, 2, s.ItemCount())
	assert.Equal(t, 40.0, s.Total())

	require.NoError(t, s.ChangeQuantity(10, -2))
	assert.Equal(t, 0, s.LineCount())
	assert.Equal(t, 0.0, s.Total())
}

func TestSession_SnapshotConsistentUnderConcurrentEdits(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	s := m.Create()
	s.RefreshCatalog([]domain.MenuItem{
		{ID: 10, Name: "Tea", Price: 20, IsAvailable: true},
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			assert.NoError(t, s.AddItem(10))
		}
	}()

	// Every snapshot must describe one basket state: its total equals
	// the sum over its own lines, regardless of where the writer is.
	check := func() {
		lines, total := s.Snapshot()
		sum := 0.0
		for _, line := range lines {
			sum += float64(line.Quantity) * line.Item.Price
		}
		assert.Equal(t, sum, total)
	}
	for i := 0; i < 500; i++ {
		check()
	}
	<-done
	check()

	_, total := s.Snapshot()
	assert.Equal(t, 10000.0, total)
}
