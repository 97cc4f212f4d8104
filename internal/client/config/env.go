package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	envServerAddr     = "STACKQUERY_SERVER_ADDR"
	envDatabasePath   = "STACKQUERY_DB_PATH"
	envLogLevel       = "STACKQUERY_LOG_LEVEL"
	envRequestTimeout = "STACKQUERY_REQUEST_TIMEOUT"
)

// parseEnv overlays Config with environment variables. A .env file is
// loaded first if present; it never overrides variables already set.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.ServerEndpointAddr = getEnv(envServerAddr, cfg.ServerEndpointAddr)
	cfg.DatabasePath = getEnv(envDatabasePath, cfg.DatabasePath)
	cfg.LogLevel = getEnv(envLogLevel, cfg.LogLevel)

	if v := os.Getenv(envRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
