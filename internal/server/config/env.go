package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	envGRPCAddr       = "STACKQUERY_GRPC_ADDR"
	envHTTPAddr       = "STACKQUERY_HTTP_ADDR"
	envDatabaseDSN    = "STACKQUERY_DATABASE_DSN"
	envSecretKey      = "STACKQUERY_SECRET_KEY"
	envLogLevel       = "STACKQUERY_LOG_LEVEL"
	envJWTValidity    = "STACKQUERY_JWT_TTL"
	envSessionTTL     = "STACKQUERY_SESSION_TTL"
	envS3User         = "STACKQUERY_S3_USER"
	envS3Password     = "STACKQUERY_S3_PASSWORD"
	envS3Bucket       = "STACKQUERY_S3_BUCKET"
	envS3Region       = "STACKQUERY_S3_REGION"
	envS3BaseEndpoint = "STACKQUERY_S3_ENDPOINT"
)

// parseEnv overlays Config with environment variables, loading .env first
// when present. Malformed durations panic.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.EndpointAddrGRPC = getEnv(envGRPCAddr, cfg.EndpointAddrGRPC)
	cfg.EndpointAddrHTTP = getEnv(envHTTPAddr, cfg.EndpointAddrHTTP)
	cfg.DatabaseDSN = getEnv(envDatabaseDSN, cfg.DatabaseDSN)
	cfg.SecretKey = getEnv(envSecretKey, cfg.SecretKey)
	cfg.LogLevel = getEnv(envLogLevel, cfg.LogLevel)
	cfg.JWTValidityDuration = getEnvDuration(envJWTValidity, cfg.JWTValidityDuration)
	cfg.SessionValidityDuration = getEnvDuration(envSessionTTL, cfg.SessionValidityDuration)
	cfg.S3RootUser = getEnv(envS3User, cfg.S3RootUser)
	cfg.S3RootPassword = getEnv(envS3Password, cfg.S3RootPassword)
	cfg.S3Bucket = getEnv(envS3Bucket, cfg.S3Bucket)
	cfg.S3Region = getEnv(envS3Region, cfg.S3Region)
	cfg.S3BaseEndpoint = getEnv(envS3BaseEndpoint, cfg.S3BaseEndpoint)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
