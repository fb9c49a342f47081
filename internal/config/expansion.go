package config

import (
	"fmt"
	"os"
)

// ResolveEnvVars fills credentials from the environment when the config file
// left them empty. Direct values take precedence.
func (c *ExpansionConfig) ResolveEnvVars() {
	if c.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			c.APIKey = val
		}
	}
	if c.BaseURL == "" {
		if val := os.Getenv("OPENAI_BASE_URL"); val != "" {
			c.BaseURL = val
		}
	}
}

// Validate checks that an enabled expansion configuration is usable.
// A disabled configuration is always valid.
func (c *ExpansionConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Model == "" {
		return fmt.Errorf("expansion: model is required when enabled")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("expansion: timeout_seconds must not be negative")
	}
	return nil
}
