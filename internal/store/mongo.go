package store

import (
	"context"
	"fmt"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	categoriesCollection = "categories"
	itemsCollection      = "menu_items"
	settingsCollection   = "settings"
	countersCollection   = "counters"
)

type mongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{db: db}
}

type settingDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

type counterDoc struct {
	Seq int64 `bson:"seq"`
}

// nextID issues the next int64 ID for the named collection from the
// counters collection. IDs are store-issued, unique per collection.
func (m *mongoStore) nextID(ctx context.Context, name string) (int64, error) {
	filter := bson.M{"_id": name}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter counterDoc
	err := m.db.Collection(countersCollection).
		FindOneAndUpdate(ctx, filter, update, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to issue id for %s: %w", name, err)
	}
	return counter.Seq, nil
}

func (m *mongoStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cursor, err := m.db.Collection(categoriesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (m *mongoStore) listItems(ctx context.Context, filter bson.M) ([]domain.MenuItem, error) {
	cursor, err := m.db.Collection(itemsCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

func (m *mongoStore) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	return m.listItems(ctx, bson.M{})
}

func (m *mongoStore) ListAvailableItems(ctx context.Context) ([]domain.MenuItem, error) {
	return m.listItems(ctx, bson.M{"is_available": true})
}

func (m *mongoStore) InsertCategory(ctx context.Context, name string) (int64, error) {
	id, err := m.nextID(ctx, categoriesCollection)
	if err != nil {
		return 0, err
	}

	_, err = m.db.Collection(categoriesCollection).InsertOne(ctx, domain.Category{
		ID:   id,
		Name: name,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}
	return id, nil
}

func (m *mongoStore) DeleteCategory(ctx context.Context, id int64) error {
	// Items go first, category last. Both deletes are idempotent, so a
	// failed cascade can be retried until it converges: the category
	// stays visible until every item referencing it is gone, and a
	// retry never strands orphaned items behind an ErrNotFound.
	_, err := m.db.Collection(itemsCollection).DeleteMany(ctx, bson.M{"category_id": id})
	if err != nil {
		return fmt.Errorf("failed to cascade category delete: %w", err)
	}

	result, err := m.db.Collection(categoriesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoStore) InsertItem(ctx context.Context, item domain.MenuItem) (int64, error) {
	id, err := m.nextID(ctx, itemsCollection)
	if err != nil {
		return 0, err
	}

	item.ID = id
	_, err = m.db.Collection(itemsCollection).InsertOne(ctx, item)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}
	return id, nil
}

func (m *mongoStore) UpdateItem(ctx context.Context, id int64, item domain.MenuItem) error {
	update := bson.M{"$set": bson.M{
		"name":         item.Name,
		"price":        item.Price,
		"category_id":  item.CategoryID,
		"is_non_veg":   item.IsNonVeg,
		"is_available": item.IsAvailable,
		"image_path":   item.ImagePath,
		"description":  item.Description,
	}}

	result, err := m.db.Collection(itemsCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoStore) DeleteItem(ctx context.Context, id int64) error {
	result, err := m.db.Collection(itemsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoStore) ListSettings(ctx context.Context) (map[string]string, error) {
	cursor, err := m.db.Collection(settingsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer cursor.Close(ctx)

	settings := make(map[string]string)
	for cursor.Next(ctx) {
		var doc settingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode setting: %w", err)
		}
		settings[doc.Key] = doc.Value
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("settings cursor error: %w", err)
	}
	return settings, nil
}

func (m *mongoStore) UpsertSetting(ctx context.Context, key, value string) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"value": value}}
	opts := options.Update().SetUpsert(true)

	_, err := m.db.Collection(settingsCollection).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}
