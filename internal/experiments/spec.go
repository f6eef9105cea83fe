// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package experiments generates batches of job scripts from a template and
// a parameter configuration: fixed replacements, a grid search over value
// lists, hand-picked presets, or any combination. Each run writes its files
// into a timestamped directory together with a shell script that submits or
// executes them all.
package experiments

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

// LoadSpec reads and validates an experiment configuration file. YAML and
// JSON are both accepted; JSON parses as YAML.
func LoadSpec(path string) (*types.ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var spec types.ExperimentSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validateSpec(&spec); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &spec, nil
}

func validateSpec(spec *types.ExperimentSpec) error {
	for key, values := range spec.GridSearch {
		if len(values) == 0 {
			return fmt.Errorf("grid search parameter %q cannot be empty", key)
		}
	}
	if len(spec.GridSearch) == 0 && len(spec.PredefinedConfigs) == 0 {
		return fmt.Errorf("config must specify either grid_search or predefined_configs (or both)")
	}
	return nil
}
