// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database struct {
		Host       string `json:"host"`
		Port       string `json:"port"`
		User       string `json:"user"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		SSLMode    string `json:"sslmode"`
		SearchPath string `json:"schema"`
	} `json:"database"`
	Redis struct {
		URL string `json:"url"`
	} `json:"redis"`
	JWT struct {
		Secret       string        `json:"secret"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
	} `json:"server"`
	Session struct {
		TTL time.Duration `json:"ttl"`
	} `json:"session"`
	Cache struct {
		TTL         time.Duration `json:"ttl"`
		CleanupFreq time.Duration `json:"cleanup_freq"`
	} `json:"cache"`
}

// DSN returns the postgres connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
		c.Database.SearchPath,
	)
}

// URL returns the database as a postgres:// URL, the form pgxpool expects.
func (c *Config) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&search_path=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		c.Database.SearchPath,
	)
}

func Load() *Config {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	cfg := &Config{}

	// Database configuration
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "jobdesk")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", "public")

	// Redis is optional; sessions stay in memory without it
	cfg.Redis.URL = getEnv("REDIS_URL", "")

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-secret-key")
	cfg.JWT.ExpiryPeriod = time.Hour * 24

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15

	// Authoring sessions are dropped after this much inactivity
	cfg.Session.TTL = getDuration("SESSION_TTL", 2*time.Hour)

	// Cache configuration
	cfg.Cache.TTL = getDuration("CACHE_TTL", 5*time.Minute)
	cfg.Cache.CleanupFreq = time.Minute

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("invalid duration, using default", "key", key, "value", value)
	return defaultValue
}
