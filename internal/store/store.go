package store

import (
	"context"
	"errors"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
)

var ErrNotFound = errors.New("record not found")

// Store defines the remote catalog/settings store operations.
// Consumers define this interface, not the MongoDB implementation.
type Store interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	ListAvailableItems(ctx context.Context) ([]domain.MenuItem, error)

	InsertCategory(ctx context.Context, name string) (int64, error)
	// DeleteCategory removes the category and every item referencing it.
	// The cascade happens here; callers only issue the delete and reload.
	DeleteCategory(ctx context.Context, id int64) error

	InsertItem(ctx context.Context, item domain.MenuItem) (int64, error)
	UpdateItem(ctx context.Context, id int64, item domain.MenuItem) error
	DeleteItem(ctx context.Context, id int64) error

	ListSettings(ctx context.Context) (map[string]string, error)
	UpsertSetting(ctx context.Context, key, value string) error
}
