// Package config loads the process-wide defaults for the LLM client using
// the Singleton pattern. Values come from the environment with built-in
// fallbacks; there is no config file.
package config

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const envPrefix = "LLM"

// Defaults applied when no environment override is present.
const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-sonnet-4-20250514"
)

// Config holds the process defaults consumed when constructing the client.
type Config struct {
	// BaseURL is the API endpoint, overridden by LLM_BASE_URL.
	BaseURL string

	// Model is the identifier used when callers ask for "default",
	// overridden by LLM_MODEL.
	Model string

	// APIKey seeds the stored key at startup, overridden by LLM_API_KEY.
	// An empty key is allowed; the API rejects the first real call.
	APIKey string
}

var (
	configInstance *Config
	configOnce     sync.Once
)

// Get returns the singleton Config, loading it on first call.
func Get() *Config {
	configOnce.Do(func() {
		configInstance = load()
	})
	return configInstance
}

// Reset discards the cached Config so the next Get reloads it.
// This is primarily used for testing purposes.
func Reset() {
	configOnce = sync.Once{}
	configInstance = nil
}

func load() *Config {
	v := viper.New()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("api_key", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		BaseURL: v.GetString("base_url"),
		Model:   v.GetString("model"),
		APIKey:  v.GetString("api_key"),
	}
}
