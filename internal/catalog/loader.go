package catalog

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
)

// Store is the slice of the remote store this package reads.
// Consumers define this interface, not the MongoDB implementation.
type Store interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	ListAvailableItems(ctx context.Context) ([]domain.MenuItem, error)
}

// Loader loads catalog snapshots for the two surfaces. Store failures
// degrade to empty data so the storefront renders an empty menu instead
// of an error page. Store ordering is not stable, so both loads impose
// name ascending with ID as the tie-break.
type Loader struct {
	store Store
	cache *Cache // optional; storefront loads only
}

func NewLoader(store Store, cache *Cache) *Loader {
	return &Loader{store: store, cache: cache}
}

// LoadStorefront returns all categories and only available items.
func (l *Loader) LoadStorefront(ctx context.Context) ([]domain.Category, []domain.MenuItem) {
	if l.cache != nil {
		snap, err := l.cache.Get(ctx)
		if err == nil {
			return snap.Categories, snap.Items
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("menu cache get error: %v", err)
		}
	}

	categories, err := l.store.ListCategories(ctx)
	if err != nil {
		log.Printf("storefront category load failed: %v", err)
		return []domain.Category{}, []domain.MenuItem{}
	}
	items, err := l.store.ListAvailableItems(ctx)
	if err != nil {
		log.Printf("storefront item load failed: %v", err)
		return []domain.Category{}, []domain.MenuItem{}
	}

	sortCategories(categories)
	sortItems(items)

	if l.cache != nil {
		snap := &MenuSnapshot{Categories: categories, Items: items}
		go func() {
			if err := l.cache.Set(context.Background(), snap); err != nil {
				log.Printf("menu cache set error: %v", err)
			}
		}()
	}

	return categories, items
}

// LoadAdmin returns all categories and all items, bypassing the
// storefront cache so staff always see fresh state.
func (l *Loader) LoadAdmin(ctx context.Context) ([]domain.Category, []domain.MenuItem) {
	categories, err := l.store.ListCategories(ctx)
	if err != nil {
		log.Printf("admin category load failed: %v", err)
		return []domain.Category{}, []domain.MenuItem{}
	}
	items, err := l.store.ListItems(ctx)
	if err != nil {
		log.Printf("admin item load failed: %v", err)
		return []domain.Category{}, []domain.MenuItem{}
	}

	sortCategories(categories)
	sortItems(items)
	return categories, items
}

func sortCategories(categories []domain.Category) {
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
}

func sortItems(items []domain.MenuItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
