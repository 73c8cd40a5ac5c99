// Package config loads runtime configuration for the BiteBoxd CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with BITEBOXD_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   local database path
//	-l string   log level
//	-t int      request timeout (seconds)
//
// # Environment
//
//	BITEBOXD_SERVER_URL, BITEBOXD_DB_PATH, BITEBOXD_LOG_LEVEL,
//	BITEBOXD_LOG_FORMAT, BITEBOXD_REQUEST_TIMEOUT ("30s")
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000",
//	  "database_path": "biteboxd.db",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "request_timeout": "30s"
//	}
package config
