package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/DanBrus/IB-frontend/infrastructure/filestore"
	"github.com/DanBrus/IB-frontend/infrastructure/graphstore"
	"github.com/DanBrus/IB-frontend/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Environment and logging
	Environment string `yaml:"environment" json:"environment" validate:"required,oneof=development staging production"`
	LogLevel    string `yaml:"log_level" json:"log_level" validate:"required,oneof=debug info warn error"`

	// Remote services used by the board client
	GraphAPIBaseURL string `yaml:"graph_api_base_url" json:"graph_api_base_url" validate:"required,http_url"`
	FileAPIBaseURL  string `yaml:"file_api_base_url" json:"file_api_base_url" validate:"required,http_url"`

	// Stand-in server listeners
	ServerAddress     string `yaml:"server_address" json:"server_address" validate:"required"`
	FileServerAddress string `yaml:"file_server_address" json:"file_server_address" validate:"required"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
	EnableTracing bool `yaml:"enable_tracing" json:"enable_tracing"`

	// Tracing
	OTLPEndpoint string  `yaml:"otlp_endpoint" json:"otlp_endpoint"`
	SampleRate   float64 `yaml:"sample_rate" json:"sample_rate" validate:"min=0,max=1"`

	// REPL history, empty disables it
	HistoryFile string `yaml:"history_file" json:"history_file"`

	// LoadedFrom lists the sources applied, lowest priority first
	LoadedFrom []string `yaml:"-" json:"-"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Environment:       "development",
		LogLevel:          "info",
		GraphAPIBaseURL:   graphstore.DefaultBaseURL,
		FileAPIBaseURL:    filestore.DefaultBaseURL,
		ServerAddress:     ":8001",
		FileServerAddress: ":8081",
		OTLPEndpoint:      "localhost:4317",
		SampleRate:        1.0,
		LoadedFrom:        []string{"defaults"},
	}
}

// LoadConfig loads configuration from defaults, the optional YAML file named
// by BOARD_CONFIG_FILE and environment variables, in that order.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("BOARD_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadEnvironmentVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.LoadedFrom = append(c.LoadedFrom, path)
	return nil
}

func (c *Config) loadEnvironmentVariables() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.GraphAPIBaseURL = getEnv("GRAPH_API_BASE_URL", c.GraphAPIBaseURL)
	c.FileAPIBaseURL = getEnv("FILE_API_BASE_URL", c.FileAPIBaseURL)
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.FileServerAddress = getEnv("FILE_SERVER_ADDRESS", c.FileServerAddress)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint)
	c.SampleRate = getEnvFloat("OTEL_TRACES_SAMPLER_ARG", c.SampleRate)
	c.HistoryFile = getEnv("BOARD_HISTORY_FILE", c.HistoryFile)
	c.LoadedFrom = append(c.LoadedFrom, "environment")
}

// Validate checks the final configuration
func (c *Config) Validate() error {
	return utils.ValidateStruct(c)
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
