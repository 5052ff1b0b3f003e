package store

import (
	"context"
	"errors"
	"time"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// breakerStore wraps a Store with a circuit breaker so that a dead store
// fails fast instead of stalling every UI flow behind it. Read paths
// degrade to empty data at the caller; write paths surface the error.
type breakerStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker[any]
}

func WithBreaker(inner Store) Store {
	settings := gobreaker.Settings{
		Name:    "remote-store",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// ErrNotFound is a store answer, not a store outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	}
	return &breakerStore{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (b *breakerStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.inner.ListCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

func (b *breakerStore) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.inner.ListItems(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.MenuItem), nil
}

func (b *breakerStore) ListAvailableItems(ctx context.Context) ([]domain.MenuItem, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.inner.ListAvailableItems(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.MenuItem), nil
}

func (b *breakerStore) InsertCategory(ctx context.Context, name string) (int64, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.inner.InsertCategory(ctx, name)
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (b *breakerStore) DeleteCategory(ctx context.Context, id int64) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.inner.DeleteCategory(ctx, id)
	})
	return err
}

func (b *breakerStore) InsertItem(ctx context.Context, item domain.MenuItem) (int64, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.inner.InsertItem(ctx, item)
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (b *breakerStore) UpdateItem(ctx context.Context, id int64, item domain.MenuItem) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.inner.UpdateItem(ctx, id, item)
	})
	return err
}

func (b *breakerStore) DeleteItem(ctx context.Context, id int64) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.inner.DeleteItem(ctx, id)
	})
	return err
}

func (b *breakerStore) ListSettings(ctx context.Context) (map[string]string, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.inner.ListSettings(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

func (b *breakerStore) UpsertSetting(ctx context.Context, key, value string) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.inner.UpsertSetting(ctx, key, value)
	})
	return err
}
