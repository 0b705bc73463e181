// Package config provides configuration loading and validation for the
// service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// FeedSource names one RSS feed the job matcher pulls from
type FeedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LLM holds generation backend settings
type LLM struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model,omitempty"`
}

// Config represents the service configuration. Values can be loaded from a
// JSON file and overridden by environment variables.
type Config struct {
	Port        int          `json:"port,omitempty"`
	DatabaseURL string       `json:"database_url,omitempty"`
	UploadDir   string       `json:"upload_dir,omitempty"`
	LLM         LLM          `json:"llm,omitempty"`
	Feeds       []FeedSource `json:"feeds,omitempty"`
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
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

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// FromEnv builds configuration from environment variables alone
func FromEnv() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

// applyEnv overlays environment variables onto the configuration
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
}

// applyDefaults fills unset fields with defaults
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("config error: LLM API key is required (set GROQ_API_KEY)")
	}
	for _, feed := range c.Feeds {
		if feed.Name == "" || feed.URL == "" {
			return fmt.Errorf("config error: feed entries require both 'name' and 'url'")
		}
	}
	return nil
}
