package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv         string
	Port           string
	DataDir        string
	JWTSecret      string
	TokenTTL       time.Duration
	PendingTTL     time.Duration
	AllowedOrigins string
	AdminEmail     string
	AdminPassword  string
	AdminName      string
}

func Load() Config {
	return Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:       getDuration("TOKEN_TTL_MINUTES", 24*60),
		PendingTTL:     getDuration("PENDING_TTL_MINUTES", 15),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@lexobank.local"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "change-me-admin"),
		AdminName:      getEnv("ADMIN_NAME", "Support"),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getDuration(key string, fallbackMinutes int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallbackMinutes) * time.Minute
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return time.Duration(fallbackMinutes) * time.Minute
	}
	return time.Duration(parsed) * time.Minute
}
