// Package config loads runtime configuration for the MindCare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. MINDCARE_* environment variables (see parseEnv), read with viper.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   API base URL
//	-t string   request timeout ("30s" or seconds)
//	-s string   storage file path
//	-k string   storage secret
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://mindcare.example/api",
//	  "request_timeout": "30s",
//	  "storage_path": "mindcare.db",
//	  "log_backend": "zap"
//	}
//
// # Environment
//
//	MINDCARE_API_BASE_URL, MINDCARE_REQUEST_TIMEOUT, MINDCARE_STORAGE_PATH,
//	MINDCARE_STORAGE_SECRET, MINDCARE_LOG_LEVEL, MINDCARE_LOG_BACKEND
package config
