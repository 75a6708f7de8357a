// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for the embedding provider

	// Embedding
	EmbeddingModel string `json:"embedding_model,omitempty"` // Embedding model name (default: text-embedding-004)

	// Matching
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"` // Minimum cosine similarity for a sentence match (0.0-1.0)
	KeywordConfidence   float64 `json:"keyword_confidence,omitempty"`   // Minimum prior confidence for a keyword match (0.0-1.0)

	// Paths
	Taxonomy string `json:"taxonomy,omitempty"` // Path to taxonomy JSON file (built-in defaults when empty)

	// Behavior
	Verbose bool `json:"verbose,omitempty"`  // Print detailed debug information
	LogJSON bool `json:"log_json,omitempty"` // Emit JSON-encoded logs
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("config error: 'similarity_threshold' must be between 0.0 and 1.0")
	}
	if c.KeywordConfidence < 0 || c.KeywordConfidence > 1 {
		return fmt.Errorf("config error: 'keyword_confidence' must be between 0.0 and 1.0")
	}

	if c.Taxonomy != "" {
		if _, err := os.Stat(c.Taxonomy); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.Taxonomy)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.Taxonomy == "" {
		result.Taxonomy = defaults.Taxonomy
	}

	// Float fields: use default if zero
	if result.SimilarityThreshold == 0 {
		result.SimilarityThreshold = defaults.SimilarityThreshold
	}
	if result.KeywordConfidence == 0 {
		result.KeywordConfidence = defaults.KeywordConfidence
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
