package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/stackquery/internal/flagx"
	"github.com/dmitrijs2005/stackquery/internal/timex"
)

// JsonConfig is the JSON form of Config. Durations accept "15m" or
// integer nanoseconds. Absent keys leave the current value alone.
type JsonConfig struct {
	EndpointAddrGRPC        string          `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP        string          `json:"endpoint_addr_http"`
	DatabaseDSN             string          `json:"database_dsn"`
	SecretKey               string          `json:"secret_key"`
	LogLevel                string          `json:"log_level"`
	JWTValidityDuration     *timex.Duration `json:"jwt_validity_duration"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	S3RootUser              string          `json:"s3_root_user"`
	S3RootPassword          string          `json:"s3_root_password"`
	S3Bucket                string          `json:"s3_bucket"`
	S3Region                string          `json:"s3_region"`
	S3BaseEndpoint          string          `json:"s3_base_endpoint"`
}

// parseJson overlays Config with the file named by -c or -config.
// It panics on read or unmarshal errors.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.JWTValidityDuration != nil {
		config.JWTValidityDuration = c.JWTValidityDuration.Duration
	}
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
