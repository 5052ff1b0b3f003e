package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCatalogStore struct {
	m          sync.RWMutex
	categories []domain.Category
	items      []domain.MenuItem
	err        error
}

func (m *mockCatalogStore) ListCategories(context.Context) ([]domain.Category, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockCatalogStore) ListItems(context.Context) ([]domain.MenuItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockCatalogStore) ListAvailableItems(context.Context) ([]domain.MenuItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var available []domain.MenuItem
	for _, item := range m.items {
		if item.IsAvailable {
			available = append(available, item)
		}
	}
	return available, nil
}

func TestLoadStorefront_FiltersUnavailable(t *testing.T) {
	mockStore := &mockCatalogStore{
		categories: []domain.Category{{ID: 1, Name: "Drinks"}},
		items: []domain.MenuItem{
			{ID: 10, Name: "Tea", Price: 20, CategoryID: 1, IsAvailable: true},
			{ID: 11, Name: "Coffee", Price: 30, CategoryID: 1, IsAvailable: false},
		},
	}

	loader := NewLoader(mockStore, nil)
	categories, items := loader.LoadStorefront(context.Background())

	require.Len(t, categories, 1)
	require.Len(t, items, 1)
	assert.Equal(t, int64(10), items[0].ID)
}

func TestLoadAdmin_ReturnsAllItems(t *testing.T) {
	mockStore := &mockCatalogStore{
		categories: []domain.Category{{ID: 1, Name: "Drinks"}},
		items: []domain.MenuItem{
			{ID: 10, Name: "Tea", IsAvailable: true},
			{ID: 11, Name: "Coffee", IsAvailable: false},
		},
	}

	loader := NewLoader(mockStore, nil)
	_, items := loader.LoadAdmin(context.Background())

	assert.Len(t, items, 2)
}

func TestLoadStorefront_StoreError_ReturnsEmpty(t *testing.T) {
	mockStore := &mockCatalogStore{err: fmt.Errorf("store unavailable")}

	loader := NewLoader(mockStore, nil)
	categories, items := loader.LoadStorefront(context.Background())

	require.NotNil(t, categories)
	require.NotNil(t, items)
	assert.Empty(t, categories)
	assert.Empty(t, items)
}

func TestLoadAdmin_StoreError_ReturnsEmpty(t *testing.T) {
	mockStore := &mockCatalogStore{err: fmt.Errorf("store unavailable")}

	loader := NewLoader(mockStore, nil)
	categories, items := loader.LoadAdmin(context.Background())

	assert.Empty(t, categories)
	assert.Empty(t, items)
}

func TestLoadStorefront_DeterministicOrder(t *testing.T) {
	mockStore := &mockCatalogStore{
		categories: []domain.Category{
			{ID: 3, Name: "Snacks"},
			{ID: 2, Name: "Drinks"},
			{ID: 1, Name: "Drinks"},
		},
		items: []domain.MenuItem{
			{ID: 12, Name: "Tea", IsAvailable: true},
			{ID: 10, Name: "Samosa", IsAvailable: true},
			{ID: 11, Name: "Samosa", IsAvailable: true},
		},
	}

	loader := NewLoader(mockStore, nil)
	categories, items := loader.LoadStorefront(context.Background())

	// Name ascending, ID as tie-break.
	require.Len(t, categories, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{categories[0].ID, categories[1].ID, categories[2].ID})
	require.Len(t, items, 3)
	assert.Equal(t, []int64{10, 11, 12}, []int64{items[0].ID, items[1].ID, items[2].ID})
}
