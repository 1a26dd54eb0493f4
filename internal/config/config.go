// Package config decodes a caller-supplied map into a domain.EngineConfig
// using viper's map-decode path. Loading the map from a file on disk is
// out of scope (spec.md §1's Non-goals exclude a config-file front end);
// this exists so an embedding tool can hand in a parsed
// YAML/JSON/TOML/flag blob without reimplementing viper's decode rules.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/reachscan/reachscan/domain"
)

// FromMap decodes m (e.g. the result of a caller's own file/flag parsing)
// into an EngineConfig, starting from domain.DefaultEngineConfig so any
// keys m omits keep their defaults.
func FromMap(m map[string]any) (*domain.EngineConfig, error) {
	cfg := domain.DefaultEngineConfig()
	if len(m) == 0 {
		return cfg, nil
	}

	v := viper.New()
	if err := v.MergeConfigMap(m); err != nil {
		return nil, fmt.Errorf("config: merge map: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
