// Package config loads runtime configuration for the CustomerConnect console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: CUSTOMERCONNECT_API_URL, CUSTOMERCONNECT_STATE,
//     CUSTOMERCONNECT_LOG_LEVEL, CUSTOMERCONNECT_REQUEST_TIMEOUT. A .env file
//     in the working directory is loaded first (github.com/joho/godotenv).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL (default http://localhost:5000/api)
//	-s string   state file path
//	-t int      request timeout (seconds)
//	-l string   log level
//	-f string   log format (console or text)
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://crm.example.com/api",
//	  "state_path": "/home/me/.config/customerconnect/state.db",
//	  "request_timeout": "15s",
//	  "cache_ttl": "30s",
//	  "log_level": "debug",
//	  "log_format": "text"
//	}
package config
