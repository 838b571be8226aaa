// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents settings that can be loaded from a JSON file. All fields
// are optional; missing values use defaults or come from CLI flags.
type Config struct {
	// Upstream
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Generation model name

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Pipeline tunables. The defaults preserve observed behavior; the caps
	// exist to bound cost and latency, not because the values mean anything.
	SearchBreadth    int  `json:"search_breadth,omitempty"`     // Max queries crawled per run
	ExtractBatchSize int  `json:"extract_batch_size,omitempty"` // Pages per extraction prompt
	EnrichPages      bool `json:"enrich_pages,omitempty"`       // Fetch page bodies after crawling
	UseBrowser       bool `json:"use_browser,omitempty"`        // Headless rendering fallback during enrichment

	Verbose bool `json:"verbose,omitempty"` // Print detailed progress information
}

// Load loads configuration from a JSON file.
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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.SearchBreadth < 0 {
		return fmt.Errorf("config error: 'search_breadth' must be non-negative")
	}
	if c.ExtractBatchSize < 0 {
		return fmt.Errorf("config error: 'extract_batch_size' must be non-negative")
	}
	if c.UseBrowser && !c.EnrichPages {
		return fmt.Errorf("config error: 'use_browser' requires 'enrich_pages'")
	}
	return nil
}
