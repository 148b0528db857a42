package urx

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseReplayConfig reads a ReplayConfig from YAML, for example
//
//	buffer_size: 100
//	window_time: 30s
//
// Missing fields keep their DefaultReplayConfig values.
func ParseReplayConfig(data []byte) (ReplayConfig, error) {
	var parsed ReplayConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return ReplayConfig{}, fmt.Errorf("failed to parse replay config: %w", err)
	}
	if err := parsed.Validate(); err != nil {
		return ReplayConfig{}, fmt.Errorf("invalid replay config: %w", err)
	}

	cfg := DefaultReplayConfig()
	cfg.Merge(&parsed)
	return cfg, nil
}

// Validate rejects negative bounds.
func (c ReplayConfig) Validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer_size must not be negative, got %d", c.BufferSize)
	}
	if c.WindowTime < 0 {
		return fmt.Errorf("window_time must not be negative, got %s", c.WindowTime)
	}
	return nil
}
