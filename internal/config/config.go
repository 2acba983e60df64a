// Package config provides configuration loading for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds runtime configuration. All fields are optional; missing
// values fall back to environment variables or flag defaults.
type Config struct {
	// LLM credentials
	GeminiAPIKey     string `json:"gemini_api_key,omitempty"`
	GeminiRESTAPIKey string `json:"gemini_rest_api_key,omitempty"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"`
	OutputDir   string `json:"output_dir,omitempty"`

	// Server
	ListenAddr string `json:"listen_addr,omitempty"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // headless browser fallback for SPA job boards
	Verbose    bool `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables only.
func FromEnv() *Config {
	return &Config{
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiRESTAPIKey: os.Getenv("GEMINI_REST_API_KEY"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		OutputDir:        os.Getenv("OUTPUT_DIR"),
		ListenAddr:       os.Getenv("LISTEN_ADDR"),
	}
}

// MergeEnv fills empty fields from environment variables. File values
// take precedence over the environment.
func (c *Config) MergeEnv() {
	env := FromEnv()
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = env.GeminiAPIKey
	}
	if c.GeminiRESTAPIKey == "" {
		c.GeminiRESTAPIKey = env.GeminiRESTAPIKey
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = env.DatabaseURL
	}
	if c.OutputDir == "" {
		c.OutputDir = env.OutputDir
	}
	if c.ListenAddr == "" {
		c.ListenAddr = env.ListenAddr
	}
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_dir is not a directory: %s", c.OutputDir)
		}
	}
	return nil
}
