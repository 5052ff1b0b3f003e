package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the server binary needs, resolved once at boot.
type Config struct {
	HTTPPort string

	MongoURI            string
	MongoDBName         string
	MongoConnectTimeout time.Duration
	MongoMaxPoolSize    uint64
	MongoMinPoolSize    uint64

	// RedisAddr empty disables the storefront menu cache.
	RedisAddr     string
	RedisPassword string

	// GCSBucket empty disables image uploads; item writes with an image
	// then fail with an upload error instead of silently dropping it.
	GCSBucket string

	AdminToken string

	RequestTimeout time.Duration
	SessionTTL     time.Duration
}

// Load reads .env if present, then resolves each setting from the
// environment with a local-development default.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found. Using system environment variables.")
	}

	return Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:         getEnv("MONGO_DB_NAME", "streetbite"),
		MongoConnectTimeout: getDurationEnv("MONGO_CONNECT_TIMEOUT_SECONDS", 10*time.Second),
		MongoMaxPoolSize:    getUint64Env("MONGO_MAX_POOL_SIZE", 100),
		MongoMinPoolSize:    getUint64Env("MONGO_MIN_POOL_SIZE", 10),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		GCSBucket:           getEnv("GCS_BUCKET", ""),
		AdminToken:          getEnv("ADMIN_TOKEN", "changeme"),
		RequestTimeout:      getDurationEnv("REQUEST_TIMEOUT_SECONDS", 10*time.Second),
		SessionTTL:          getDurationEnv("SESSION_TTL_SECONDS", 2*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getUint64Env(key string, defaultValue uint64) uint64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs <= 0 {
		log.Printf("Invalid %s=%q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return time.Duration(secs) * time.Second
}
