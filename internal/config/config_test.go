package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dwpark/llm/internal/config"
)

func TestGetDefaults(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg := config.Get()
	require.Equal(t, config.DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, config.DefaultModel, cfg.Model)
	require.Empty(t, cfg.APIKey)
}

func TestGetEnvOverrides(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "http://localhost:9999")
	t.Setenv("LLM_MODEL", "claude-3-opus-20240229")
	t.Setenv("LLM_API_KEY", "sk-ant-test")

	config.Reset()
	t.Cleanup(config.Reset)

	cfg := config.Get()
	require.Equal(t, "http://localhost:9999", cfg.BaseURL)
	require.Equal(t, "claude-3-opus-20240229", cfg.Model)
	require.Equal(t, "sk-ant-test", cfg.APIKey)
}

func TestGetIsCached(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	require.Same(t, config.Get(), config.Get())
}
