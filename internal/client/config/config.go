package config

import "time"

// Config holds runtime settings for the StackQuery CLI.
type Config struct {
	ServerEndpointAddr string
	DatabasePath       string
	LogLevel           string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabasePath = "data/client.db"
	c.LogLevel = "warn"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the environment (including a
// .env file), a JSON file and flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
