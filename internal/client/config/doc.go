// Package config loads runtime configuration for the StackQuery CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally from a .env file in the working
//     directory (see parseEnv).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-d string   path of the local SQLite database
//	-l string   log level (debug, info, warn, error)
//	-t int      per-request timeout (seconds)
//
// Environment variables
//
//	STACKQUERY_SERVER_ADDR, STACKQUERY_DB_PATH, STACKQUERY_LOG_LEVEL,
//	STACKQUERY_REQUEST_TIMEOUT (a duration such as "10s")
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_path": "data/client.db",
//	  "log_level": "warn",
//	  "request_timeout": "10s"
//	}
package config
