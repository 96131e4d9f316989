package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	DefaultPort           = "8080"
	DefaultCatalogBaseURL = "https://ckan0.cf.opendata.inter.prod-toronto.ca"
)

// Config is the application configuration, built once at process start
// and passed to the components that need it.
type Config struct {
	Port           string
	CatalogBaseURL string
	TraceStdout    bool
	// Verbose sends timing and access log lines to stderr in the CLI.
	Verbose        bool
}

// Load reads configuration from the environment, falling back to defaults.
func Load() Config {
	return Config{
		Port:           Get("PORT", DefaultPort),
		CatalogBaseURL: strings.TrimRight(Get("CATALOG_BASE_URL", DefaultCatalogBaseURL), "/"),
		TraceStdout:    GetBool("TRACE_STDOUT", false),
		Verbose:        GetBool("RINKS_VERBOSE", false),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
