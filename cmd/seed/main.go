package main

import (
	"context"
	"log"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/config"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/settings"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/store"
)

var defaultSettings = map[string]string{
	settings.KeyShopStatus: settings.StatusClosed,
	settings.KeyPhone:      "+91 98765 43210",
	settings.KeyUPIID:      "yourname@upi",
	"address":              "123 Spice Route Market, Foodie Lane, Downtown",
	"hours_weekday":        "11:00 AM - 10:00 PM",
	"hours_saturday":       "11:00 AM - 11:30 PM",
	"hours_sunday":         "12:00 PM - 09:00 PM",
}

// Seeds default settings and a small demo menu. Safe to run repeatedly:
// existing settings keep their values and the menu is only created when
// the catalog is empty.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	mongoDB, err := store.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName, store.ConnOptions{
		ConnectTimeout: cfg.MongoConnectTimeout,
		MaxPoolSize:    cfg.MongoMaxPoolSize,
		MinPoolSize:    cfg.MongoMinPoolSize,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)

	st := store.NewMongoStore(mongoDB)

	existing, err := st.ListSettings(ctx)
	if err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	}
	for key, value := range defaultSettings {
		if _, ok := existing[key]; ok {
			continue
		}
		if err := st.UpsertSetting(ctx, key, value); err != nil {
			log.Fatalf("Failed to seed setting %s: %v", key, err)
		}
		log.Printf("Seeded setting %s", key)
	}

	categories, err := st.ListCategories(ctx)
	if err != nil {
		log.Fatalf("Failed to read categories: %v", err)
	}
	if len(categories) > 0 {
		log.Printf("Catalog already has %d categories, skipping menu seed", len(categories))
		return
	}

	menu := map[string][]domain.MenuItem{
		"Beverages": {
			{Name: "Masala Chai", Price: 20, IsAvailable: true, Description: "Spiced milk tea"},
			{Name: "Fresh Lime Soda", Price: 40, IsAvailable: true},
		},
		"Snacks": {
			{Name: "Samosa", Price: 15, IsAvailable: true, Description: "Crispy potato pastry"},
			{Name: "Vada Pav", Price: 25, IsAvailable: true},
			{Name: "Chicken Roll", Price: 80, IsNonVeg: true, IsAvailable: true},
		},
	}

	for name, items := range menu {
		categoryID, err := st.InsertCategory(ctx, name)
		if err != nil {
			log.Fatalf("Failed to seed category %s: %v", name, err)
		}
		for _, item := range items {
			item.CategoryID = categoryID
			if _, err := st.InsertItem(ctx, item); err != nil {
				log.Fatalf("Failed to seed item %s: %v", item.Name, err)
			}
		}
		log.Printf("Seeded category %s with %d items", name, len(items))
	}

	log.Println("StreetBite database initialized successfully")
}
