package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by parseEnv, e.g.
// MINDCARE_API_BASE_URL.
const EnvPrefix = "MINDCARE"

var envKeys = []string{
	"api_base_url",
	"request_timeout",
	"storage_path",
	"storage_secret",
	"log_level",
	"log_backend",
}

// parseEnv overlays Config with MINDCARE_* environment variables. Unset
// variables leave fields untouched. Panics on an unparsable timeout.
func parseEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range envKeys {
		if err := v.BindEnv(k); err != nil {
			panic(err)
		}
	}

	if v.IsSet("api_base_url") {
		cfg.APIBaseURL = v.GetString("api_base_url")
	}
	if v.IsSet("request_timeout") {
		d, err := parseTimeout(v.GetString("request_timeout"))
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v.IsSet("storage_path") {
		cfg.StoragePath = v.GetString("storage_path")
	}
	if v.IsSet("storage_secret") {
		cfg.StorageSecret = v.GetString("storage_secret")
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("log_backend") {
		cfg.LogBackend = v.GetString("log_backend")
	}
}
