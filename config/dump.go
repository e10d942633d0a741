package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dump renders the effective configuration, defaults and expansions
// included, as YAML.
func Dump(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return out, nil
}
