package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/blob"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/catalog"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/settings"
	"github.com/google/uuid"
)

var ErrImageUploadFailed = errors.New("image upload failed")

// ValidationError reports bad admin input. Raised before any store call,
// so a malformed write never reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Store is the slice of the remote store the pipeline mutates.
// Consumers define this interface, not the MongoDB implementation.
type Store interface {
	InsertCategory(ctx context.Context, name string) (int64, error)
	DeleteCategory(ctx context.Context, id int64) error
	InsertItem(ctx context.Context, item domain.MenuItem) (int64, error)
	UpdateItem(ctx context.Context, id int64, item domain.MenuItem) error
	DeleteItem(ctx context.Context, id int64) error
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	UpsertSetting(ctx context.Context, key, value string) error
}

// State is everything the admin surface renders, re-derived in full
// from the store after every successful mutation.
type State struct {
	Categories []domain.Category `json:"categories"`
	Items      []domain.MenuItem `json:"items"`
	Settings   settings.Settings `json:"settings"`
}

// ImageUpload is a new image supplied with an item create/update.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

type ItemInput struct {
	Name        string
	Price       float64
	CategoryID  int64
	IsNonVeg    bool
	IsAvailable bool
	Description string
	Image       *ImageUpload
}

func (in *ItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if in.CategoryID <= 0 {
		return &ValidationError{Field: "category_id", Reason: "must reference a category"}
	}
	return nil
}

// Pipeline applies admin mutations. Every mutation is terminal: on
// success it invalidates the storefront cache, reloads catalog and
// settings in full and returns the reloaded state. There is no partial
// or optimistic patching; two mutations completing out of submission
// order still converge because each one re-derives everything.
type Pipeline struct {
	store     Store
	blobs     blob.Store
	loader    *catalog.Loader
	settings  *settings.Cache
	menuCache *catalog.Cache // optional
}

func NewPipeline(store Store, blobs blob.Store, loader *catalog.Loader, cache *settings.Cache, menuCache *catalog.Cache) *Pipeline {
	return &Pipeline{
		store:     store,
		blobs:     blobs,
		loader:    loader,
		settings:  cache,
		menuCache: menuCache,
	}
}

// Reload re-derives the full admin state from the store. Also used by
// the admin surface on first render.
func (p *Pipeline) Reload(ctx context.Context) State {
	if p.menuCache != nil {
		if err := p.menuCache.Invalidate(ctx); err != nil {
			log.Printf("menu cache invalidate error: %v", err)
		}
	}

	categories, items := p.loader.LoadAdmin(ctx)
	return State{
		Categories: categories,
		Items:      items,
		Settings:   p.settings.Load(ctx),
	}
}

func (p *Pipeline) CreateCategory(ctx context.Context, name string) (State, error) {
	if strings.TrimSpace(name) == "" {
		return State{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if _, err := p.store.InsertCategory(ctx, strings.TrimSpace(name)); err != nil {
		return State{}, err
	}
	return p.Reload(ctx), nil
}

// DeleteCategory issues the delete and reloads. The store cascades the
// delete to items referencing the category; the pipeline never computes
// which items became orphaned.
func (p *Pipeline) DeleteCategory(ctx context.Context, id int64) (State, error) {
	if err := p.store.DeleteCategory(ctx, id); err != nil {
		return State{}, err
	}
	return p.Reload(ctx), nil
}

func (p *Pipeline) CreateItem(ctx context.Context, in ItemInput) (State, error) {
	if err := in.validate(); err != nil {
		return State{}, err
	}

	imagePath := ""
	if in.Image != nil {
		url, err := p.uploadImage(ctx, in.Image)
		if err != nil {
			return State{}, err
		}
		imagePath = url
	}

	_, err := p.store.InsertItem(ctx, domain.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		IsNonVeg:    in.IsNonVeg,
		IsAvailable: in.IsAvailable,
		ImagePath:   imagePath,
		Description: in.Description,
	})
	if err != nil {
		return State{}, err
	}
	return p.Reload(ctx), nil
}

func (p *Pipeline) UpdateItem(ctx context.Context, id int64, in ItemInput) (State, error) {
	if err := in.validate(); err != nil {
		return State{}, err
	}

	var imagePath string
	if in.Image != nil {
		// Upload first: a failed upload aborts the whole mutation so no
		// item record ever points at a half-uploaded image.
		url, err := p.uploadImage(ctx, in.Image)
		if err != nil {
			return State{}, err
		}
		imagePath = url
	} else {
		// No new image: the existing path is preserved unchanged.
		items, err := p.store.ListItems(ctx)
		if err != nil {
			return State{}, err
		}
		for _, item := range items {
			if item.ID == id {
				imagePath = item.ImagePath
				break
			}
		}
	}

	err := p.store.UpdateItem(ctx, id, domain.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		IsNonVeg:    in.IsNonVeg,
		IsAvailable: in.IsAvailable,
		ImagePath:   imagePath,
		Description: in.Description,
	})
	if err != nil {
		return State{}, err
	}
	return p.Reload(ctx), nil
}

func (p *Pipeline) DeleteItem(ctx context.Context, id int64) (State, error) {
	if err := p.store.DeleteItem(ctx, id); err != nil {
		return State{}, err
	}
	return p.Reload(ctx), nil
}

// SaveSettings upserts each key. Keys are written in sorted order so a
// partial failure leaves a predictable prefix applied.
func (p *Pipeline) SaveSettings(ctx context.Context, values map[string]string) (State, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		if strings.TrimSpace(key) == "" {
			return State{}, &ValidationError{Field: "key", Reason: "must not be empty"}
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if status, ok := values[settings.KeyShopStatus]; ok {
		if status != settings.StatusOpen && status != settings.StatusClosed {
			return State{}, &ValidationError{
				Field:  settings.KeyShopStatus,
				Reason: fmt.Sprintf("must be %q or %q", settings.StatusOpen, settings.StatusClosed),
			}
		}
	}

	for _, key := range keys {
		if err := p.store.UpsertSetting(ctx, key, values[key]); err != nil {
			return State{}, err
		}
	}
	return p.Reload(ctx), nil
}

// uploadImage stores the binary under a fresh collision-resistant name
// and returns the public URL.
func (p *Pipeline) uploadImage(ctx context.Context, img *ImageUpload) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(img.Filename))
	url, err := p.blobs.Upload(ctx, name, img.ContentType, img.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageUploadFailed, err)
	}
	return url, nil
}
