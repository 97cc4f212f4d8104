package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/stackquery/internal/flagx"
	"github.com/dmitrijs2005/stackquery/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current value alone.
type JsonConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr"`
	DatabasePath       string          `json:"database_path"`
	LogLevel           string          `json:"log_level"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with the file named by -c or -config.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
