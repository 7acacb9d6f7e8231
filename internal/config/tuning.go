package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds optional overrides for scoring weights and theme keywords.
//
//	weights:
//	  health: 1.5
//	themes:
//	  sleep: [tired, insomnia, nap]
type Tuning struct {
	Weights map[string]float64  `yaml:"weights"`
	Themes  map[string][]string `yaml:"themes"`
}

func LoadTuning(path string) (Tuning, error) {
	if path == "" {
		return Tuning{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: read tuning file: %w", err)
	}

	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: parse tuning file: %w", err)
	}

	for name, w := range t.Weights {
		if w < 0 {
			return Tuning{}, fmt.Errorf("config: weight for %q must not be negative", name)
		}
	}
	return t, nil
}
