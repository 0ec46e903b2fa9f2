// Package config provides configuration for the llmls completion tools.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (LLMLS_ prefix)
//  4. Caller overrides such as command-line flags
//  5. File reference resolution (_file suffix fields)
//  6. Validation
package config

import (
	"time"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/backend"
)

// Config holds all configuration for a completion round trip.
type Config struct {
	Backend      string         `yaml:"backend"`        // "huggingface", "tgi", "ollama", "openai"; default: "huggingface"
	URL          string         `yaml:"url"`            // required except for huggingface
	Model        string         `yaml:"model"`          // default: "bigcode/starcoder"
	APIToken     string         `yaml:"api_token"`      // optional
	APITokenFile string         `yaml:"api_token_file"` // _file variant for api_token
	Ide          api.Ide        `yaml:"ide"`            // default: "unknown"
	RequestBody  map[string]any `yaml:"request_body"`   // merged into every request body
	Timeout      time.Duration  `yaml:"timeout"`        // default: 60s
	Debug        DebugConfig    `yaml:"debug"`
}

// DebugConfig holds logging settings.
type DebugConfig struct {
	Categories string `yaml:"categories"` // comma separated, e.g. "client,config"
	Level      string `yaml:"level"`      // default: "INFO"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Backend: string(backend.KindHuggingFace),
		Model:   "bigcode/starcoder",
		Ide:     api.IdeUnknown,
		Timeout: 60 * time.Second,
		Debug: DebugConfig{
			Level: "INFO",
		},
	}
}

// Selector returns the backend selector described by the config. Call it
// after Validate.
func (c *Config) Selector() backend.Backend {
	return backend.Backend{Kind: backend.Kind(c.Backend), URL: c.URL}
}

// Request returns the canonical request for prompt.
func (c *Config) Request(prompt string) backend.Request {
	return backend.Request{
		Model:       c.Model,
		Prompt:      prompt,
		RequestBody: c.RequestBody,
		APIToken:    c.APIToken,
		Ide:         c.Ide,
	}
}
