package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/debug"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, LLMLS_CONFIG env, ./llmls.yaml, /etc/llmls/config.yaml)
//  3. Environment variable overrides
//  4. Caller overrides (command-line flags), applied in order
//  5. File reference resolution (_file suffix)
//  6. Validation
func Load(configPath string, overrides ...func(*Config)) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
		debug.Log("config", "loaded config file", "path", filePath)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	for _, override := range overrides {
		override(&cfg)
	}

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. LLMLS_CONFIG environment variable
// 3. ./llmls.yaml in the current directory
// 4. /etc/llmls/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("LLMLS_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"llmls.yaml",
		"/etc/llmls/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps LLMLS_* environment variables to config fields.
// Malformed values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LLMLS_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("LLMLS_BACKEND_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("LLMLS_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("LLMLS_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("LLMLS_IDE"); v != "" {
		cfg.Ide = api.Ide(v)
	}
	if v := os.Getenv("LLMLS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LLMLS_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	// LLMLS_REQUEST_BODY: JSON object merged into the request body template.
	if v := os.Getenv("LLMLS_REQUEST_BODY"); v != "" {
		body, err := parseRequestBodyJSON(v)
		if err != nil {
			return err
		}
		cfg.RequestBody = body
	}

	return nil
}

// parseRequestBodyJSON parses a JSON object of request body fields.
func parseRequestBodyJSON(jsonStr string) (map[string]any, error) {
	var body map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &body); err != nil {
		return nil, fmt.Errorf("parsing LLMLS_REQUEST_BODY JSON: %w", err)
	}
	return body, nil
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields when those are empty.
func resolveFileReferences(cfg *Config) error {
	if cfg.APITokenFile != "" && cfg.APIToken == "" {
		val, err := readSecretFile(cfg.APITokenFile)
		if err != nil {
			return fmt.Errorf("api_token_file: %w", err)
		}
		cfg.APIToken = val
	}
	return nil
}

// readSecretFile reads a file and returns its content with whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
