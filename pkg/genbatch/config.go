package genbatch

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the batch generation settings loaded from a YAML file.
type Config struct {
	APIKeyFile        string  `yaml:"api_key_file"`
	BaseURL           string  `yaml:"base_url"` // optional OpenAI-compatible endpoint
	Model             string  `yaml:"model"`
	Temperature       float32 `yaml:"temperature"`
	TopP              float32 `yaml:"top_p"`
	NumPrompts        int     `yaml:"num_prompts"`
	AttemptsPerPrompt int     `yaml:"attempts_per_prompt"`
	PollSeconds       int     `yaml:"poll_seconds"`
	OutputDir         string  `yaml:"output_dir"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIKeyFile:        "api_key.txt",
		Model:             "gpt-4o-mini",
		Temperature:       0.8,
		TopP:              0.9,
		NumPrompts:        100,
		AttemptsPerPrompt: 1,
		PollSeconds:       30,
		OutputDir:         "GeneratedHTMLs",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadAPIKey reads an API key file, tolerating a UTF-8 BOM and surrounding
// whitespace.
func LoadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("API key file %s is empty", path)
	}
	return key, nil
}
