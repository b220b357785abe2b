package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BOARD_CONFIG_FILE", "ENVIRONMENT", "LOG_LEVEL", "GRAPH_API_BASE_URL",
		"FILE_API_BASE_URL", "SERVER_ADDRESS", "FILE_SERVER_ADDRESS",
		"ENABLE_METRICS", "ENABLE_TRACING", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_TRACES_SAMPLER_ARG", "BOARD_HISTORY_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:8001", cfg.GraphAPIBaseURL)
	assert.Equal(t, "http://localhost:8081", cfg.FileAPIBaseURL)
	assert.Equal(t, ":8001", cfg.ServerAddress)
	assert.Equal(t, ":8081", cfg.FileServerAddress)
	assert.False(t, cfg.EnableTracing)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"defaults", "environment"}, cfg.LoadedFrom)
}

func TestLoadConfig_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: staging
graph_api_base_url: http://graph.internal:9000
file_api_base_url: http://files.internal:9001
enable_metrics: true
`), 0o600))
	t.Setenv("BOARD_CONFIG_FILE", path)
	t.Setenv("GRAPH_API_BASE_URL", "https://graph.example.com")
	t.Setenv("ENABLE_TRACING", "1")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "https://graph.example.com", cfg.GraphAPIBaseURL)
	assert.Equal(t, "http://files.internal:9001", cfg.FileAPIBaseURL)
	assert.True(t, cfg.EnableMetrics)
	assert.True(t, cfg.EnableTracing)
	assert.Equal(t, []string{"defaults", path, "environment"}, cfg.LoadedFrom)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		message string
	}{
		{"graph url", "GRAPH_API_BASE_URL", "localhost:8001", "graph_api_base_url must be a valid http(s) URL"},
		{"file url", "FILE_API_BASE_URL", "ftp://files", "file_api_base_url must be a valid http(s) URL"},
		{"environment", "ENVIRONMENT", "qa", "environment must be one of"},
		{"log level", "LOG_LEVEL", "verbose", "log_level must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOARD_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()

	assert.Error(t, err)
}
