package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the catalog importer.
type Config struct {
	Port       string // Service port (default: 8083)
	MongoURL   string // MongoDB connection string
	MongoDB    string // Database name
	RedisURL   string // Redis connection string for jobs and cache versioning
	StorageDir string // Directory for persisted async import payloads
}

// LoadConfig loads environment variables into the Config struct and validates
// them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:       os.Getenv("PORT"),
		MongoURL:   os.Getenv("MONGO_URL"),
		MongoDB:    os.Getenv("MONGO_DB"),
		RedisURL:   os.Getenv("REDIS_URL"),
		StorageDir: os.Getenv("IMPORT_STORAGE_DIR"),
	}

	if cfg.Port == "" {
		cfg.Port = "8083"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "catalog"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://redis:6379"
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}

	return cfg, nil
}
