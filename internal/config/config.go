package config

import (
	"os"
)

const (
	defaultPort        = "8080"
	defaultDatabaseDSN = "rental.db"
	defaultAppEnv      = "development"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseDSN string
}

func Load() *Config {
	return &Config{
		AppEnv:      getEnv("APP_ENV", defaultAppEnv),
		Port:        getEnv("PORT", defaultPort),
		DatabaseDSN: getEnv("DATABASE_URL", defaultDatabaseDSN),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
