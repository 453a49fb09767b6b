// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration. Each field corresponds to an
// environment variable; required variables are enforced by must() and a
// missing value halts startup with a fatal log message.
type Config struct {
	Env            string // application environment (dev/test/prod)
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host
	DBPort         string // database port
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token TTL in minutes
	RefreshTTLDays int    // refresh token TTL in days
	ResetTTLMin    int    // password-reset token TTL in minutes
	BcryptCost     int    // bcrypt cost for password hashing

	// Timezone is the civil calendar the gate operates on. Day-range
	// filters and entered_at are computed against this zone rather than a
	// fixed UTC offset.
	Timezone string

	SessionTTL time.Duration // kiosk session lifetime in the session store

	// S3-compatible object storage for driver photos (MinIO in dev).
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string // base URL photos are served from; presign is used when empty
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 30),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 14),
		ResetTTLMin:    envInt("RESET_TOKEN_TTL_MIN", 30),
		BcryptCost:     envInt("BCRYPT_COST", 12),
		Timezone:       envStr("APP_TIMEZONE", "Asia/Seoul"),
		SessionTTL:     envDur("KIOSK_SESSION_TTL", 30*time.Minute),
		S3Endpoint:     envStr("S3_ENDPOINT", ""),
		S3Region:       envStr("S3_REGION", "us-east-1"),
		S3Bucket:       envStr("S3_BUCKET", "images"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),
	}
}

// Location resolves the configured civil time zone. An unknown zone is a
// configuration error and halts startup.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", c.Timezone, err)
	}
	return loc
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}
