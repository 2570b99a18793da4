//go:build !tinygo

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields the document leaves out.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if cfg.RateHz == 0 {
		return errors.New("rate_hz must be positive")
	}
	if cfg.Min < 0 || cfg.Max > MaxSpeed {
		return fmt.Errorf("range %d..%d outside 0..%d", cfg.Min, cfg.Max, MaxSpeed)
	}
	if cfg.Max < cfg.Min {
		return fmt.Errorf("max %d below min %d", cfg.Max, cfg.Min)
	}
	return nil
}
