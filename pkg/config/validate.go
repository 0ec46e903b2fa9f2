package config

import (
	"errors"
	"fmt"

	"github.com/rhuss/llmls/pkg/backend"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	kind, err := backend.ParseKind(c.Backend)
	if err != nil {
		errs = append(errs, fmt.Errorf("backend must be one of %v, got %q", backend.Kinds, c.Backend))
	}

	// The hosted HuggingFace endpoint is derived from the model.
	if err == nil && kind != backend.KindHuggingFace && c.URL == "" {
		errs = append(errs, fmt.Errorf("url is required when backend is %q", c.Backend))
	}

	if c.Model == "" {
		errs = append(errs, fmt.Errorf("model is required"))
	}

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be > 0, got %v", c.Timeout))
	}

	return errors.Join(errs...)
}
