package strategyconfig

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML strategy file. Unknown fields fail immediately so
// typos cannot silently change the strategy.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse strategy file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("strategy validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the strategy file when it exists and falls back
// to the built-in Dow 30 defaults when it does not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
