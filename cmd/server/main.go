package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/admin"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/api"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/blob"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/catalog"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/checkout"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/config"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/session"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/settings"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Set up MongoDB connection
	mongoDB, err := store.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName, store.ConnOptions{
		ConnectTimeout: cfg.MongoConnectTimeout,
		MaxPoolSize:    cfg.MongoMaxPoolSize,
		MinPoolSize:    cfg.MongoMinPoolSize,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	st := store.WithBreaker(store.NewMongoStore(mongoDB))

	// Storefront menu cache is optional; without Redis every menu load
	// goes straight to the store.
	var menuCache *catalog.Cache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		menuCache = catalog.NewCache(redisClient)
	}

	blobs := blob.NewDisabledStore()
	if cfg.GCSBucket != "" {
		gcsClient, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatalf("Failed to create storage client: %v", err)
		}
		defer gcsClient.Close()
		blobs = blob.NewGCSStore(gcsClient, cfg.GCSBucket)
		log.Printf("Image uploads go to bucket %s", cfg.GCSBucket)
	} else {
		log.Printf("GCS_BUCKET not set, image uploads disabled")
	}

	loader := catalog.NewLoader(st, menuCache)
	settingsCache := settings.NewCache(st)
	gate := checkout.NewGate(settingsCache)
	pipeline := admin.NewPipeline(st, blobs, loader, settingsCache, menuCache)

	sessions := session.NewManager(cfg.SessionTTL)
	defer sessions.Close()

	router := api.NewRouter(
		api.NewStorefrontHandler(loader, settingsCache, gate, cfg.RequestTimeout),
		api.NewAdminHandler(pipeline, cfg.RequestTimeout),
		sessions,
		cfg.AdminToken,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("StreetBite server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
