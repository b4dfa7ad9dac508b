// Package config loads and validates the gloss configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the config file gloss looks for when --config is not set.
const DefaultFileName = "gloss.json"

// Config holds all recognized settings. Unknown keys in the file are
// ignored; missing keys keep their defaults.
type Config struct {
	Provider              string   `json:"llm_provider"`
	APIEndpoint           string   `json:"api_endpoint"`
	Model                 string   `json:"model"`
	Temperature           float64  `json:"temperature"`
	MaxTokens             int      `json:"max_tokens"`
	CloudAPIKey           string   `json:"cloud_api_key"`
	CloudModel            string   `json:"cloud_model"`
	CloudEndpoint         string   `json:"cloud_endpoint"`
	SupportedExtensions   []string `json:"supported_extensions"`
	MaxFileBytes          int64    `json:"max_file_bytes"`
	RequestTimeoutSeconds int      `json:"request_timeout_seconds"`
	ListTimeoutSeconds    int      `json:"list_timeout_seconds"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		Provider:      "ollama",
		APIEndpoint:   "http://localhost:11434",
		Model:         "auto",
		Temperature:   0.3,
		MaxTokens:     2000,
		CloudAPIKey:   "",
		CloudModel:    "gpt-3.5-turbo",
		CloudEndpoint: "https://api.openai.com/v1",
		SupportedExtensions: []string{
			".py", ".js", ".ts", ".java", ".cpp", ".c", ".cs", ".go", ".rb",
		},
		MaxFileBytes:          256 * 1024,
		RequestTimeoutSeconds: 300,
		ListTimeoutSeconds:    5,
	}
}

// Load reads the config file at path, creating it with defaults when it
// does not exist. Values are validated before being returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		cfg := Default()
		if err := save(path, cfg); err != nil {
			return Config{}, err
		}

		return cfg, nil
	}

	// Decode over a default copy so absent keys keep their defaults.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges for fields the pipeline depends on.
func (c Config) Validate() error {
	if c.APIEndpoint == "" && c.CloudAPIKey == "" {
		return fmt.Errorf("api_endpoint is empty and no cloud_api_key is configured")
	}

	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature %v outside [0, 1]", c.Temperature)
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}

	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("max_file_bytes must be positive, got %d", c.MaxFileBytes)
	}

	return nil
}

// SupportsExtension reports whether ext (including the leading dot) is in
// the configured extension list.
func (c Config) SupportsExtension(ext string) bool {
	for _, e := range c.SupportedExtensions {
		if e == ext {
			return true
		}
	}

	return false
}

func save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}

	return nil
}
