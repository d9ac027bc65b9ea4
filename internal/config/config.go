package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMissingSecret = errors.New("JWT_SECRET is required")

type Config struct {
	Port      string
	StaticDir string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	RedisAddr string

	KafkaBrokers []string
	KafkaTopic   string

	RateLimit float64
	RateBurst int
}

// Load reads configuration from the environment. It does not require JWT_SECRET
// so the seed loader can run without one; the server calls Validate.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		StaticDir:    getEnv("STATIC_DIR", "public"),
		DBHost:       getEnv("DB_HOST", "127.0.0.1"),
		DBPort:       getEnv("DB_PORT", "3306"),
		DBUser:       getEnv("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBName:       getEnv("DB_NAME", "todo-db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: getKafkaBrokerURLs(),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "todo-topic"),
	}

	var err error
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.BcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", "10")); err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	if cfg.RateLimit, err = strconv.ParseFloat(getEnv("RATE_LIMIT", "1"), 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	if cfg.RateBurst, err = strconv.Atoi(getEnv("RATE_BURST", "5")); err != nil {
		return nil, fmt.Errorf("invalid RATE_BURST: %w", err)
	}

	return cfg, nil
}

// Validate checks the values the API server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getKafkaBrokerURLs returns nil when KAFKA_BROKERS is unset, which disables events.
func getKafkaBrokerURLs() []string {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}
	var urls []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			urls = append(urls, b)
		}
	}
	return urls
}
