package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings. Everything is read once at startup so
// handlers never reach for ambient environment state.
type Config struct {
	Port        string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessSecret string        // HS256 signing key for access tokens
	AccessTTL    time.Duration // access token lifetime
	SessionTTL   time.Duration // server-side session lifetime

	DBMaxOpen     int
	DBMaxIdle     int
	DBMaxLifetime time.Duration
}

// Load reads configuration from environment variables.
//
//	PORT            — HTTP listen port (default: 4000)
//	DATABASE_URL    — Postgres DSN (required)
//	REDIS_ADDR      — Redis host:port for the session store (default: localhost:6379)
//	REDIS_PASSWORD  — Redis password (default: none)
//	REDIS_DB        — Redis database number (default: 0)
//	ACCESS_SECRET   — JWT signing secret (required)
//	ACCESS_TTL      — access token lifetime, e.g. "15m", "1h", or bare minutes (default: 15m)
//	SESSION_TTL     — session lifetime, same formats (default: 24h)
//	DB_MAX_OPEN     — max open DB connections (default: 25)
//	DB_MAX_IDLE     — max idle DB connections (default: 25)
//	DB_MAX_LIFETIME — max DB connection lifetime in seconds (default: 300)
func Load() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", "4000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		AccessSecret:  os.Getenv("ACCESS_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.AccessSecret == "" {
		return Config{}, errors.New("ACCESS_SECRET is required")
	}

	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, errors.New("invalid REDIS_DB: must be an integer")
	}
	cfg.RedisDB = redisDB

	cfg.AccessTTL, err = parseTTL(os.Getenv("ACCESS_TTL"), 15*time.Minute)
	if err != nil {
		return Config{}, errors.New("invalid ACCESS_TTL")
	}
	cfg.SessionTTL, err = parseTTL(os.Getenv("SESSION_TTL"), 24*time.Hour)
	if err != nil {
		return Config{}, errors.New("invalid SESSION_TTL")
	}

	maxOpen, _ := strconv.Atoi(getenv("DB_MAX_OPEN", "25"))
	maxIdle, _ := strconv.Atoi(getenv("DB_MAX_IDLE", "25"))
	lifetime, _ := strconv.Atoi(getenv("DB_MAX_LIFETIME", "300"))
	cfg.DBMaxOpen = maxOpen
	cfg.DBMaxIdle = maxIdle
	cfg.DBMaxLifetime = time.Duration(lifetime) * time.Second

	return cfg, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// parseTTL accepts durations such as "15m", "1h", "20s", or a bare number of
// minutes ("30").
func parseTTL(ttlStr string, def time.Duration) (time.Duration, error) {
	if ttlStr == "" {
		return def, nil
	}

	if strings.HasSuffix(ttlStr, "m") ||
		strings.HasSuffix(ttlStr, "h") ||
		strings.HasSuffix(ttlStr, "s") {
		return time.ParseDuration(ttlStr)
	}

	// fallback: minutes
	min, err := strconv.Atoi(ttlStr)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}
