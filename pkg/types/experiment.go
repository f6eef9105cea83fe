// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExperimentSpec is a parsed experiment configuration file. Config files are
// YAML or JSON; JSON is a subset of YAML so a single unmarshal path handles
// both.
type ExperimentSpec struct {
	// OutputDir is the base name for the generated directory; a timestamp
	// suffix is appended per run.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OutputPrefix is the prefix for generated file names.
	OutputPrefix string `json:"output_prefix" yaml:"output_prefix"`

	// FileExtension overrides the template's extension for generated files.
	FileExtension string `json:"file_extension" yaml:"file_extension"`

	// ID is the prefix for generated $IDENTIFIER values. It may contain
	// $DATE, $DATETIME, and $FILE fields.
	ID string `json:"id" yaml:"id"`

	// StringDelimiter wraps string values substituted into templates.
	StringDelimiter *string `json:"string_delimiter" yaml:"string_delimiter"`

	// Replacements maps placeholder names to fixed values applied to every
	// generated file.
	Replacements map[string]any `json:"replacements" yaml:"replacements"`

	// GridSearch maps placeholder names to value lists; the cartesian
	// product of all lists is generated.
	GridSearch map[string][]any `json:"grid_search" yaml:"grid_search"`

	// PredefinedConfigs lists hand-picked parameter sets. The reserved
	// "name" key labels the preset and is not substituted.
	PredefinedConfigs []Preset `json:"predefined_configs" yaml:"predefined_configs"`
}

// Preset is one predefined parameter set. The "name" key is a label; all
// other keys are placeholder values.
type Preset map[string]any

// Name returns the preset label, or "" if unnamed.
func (p Preset) Name() string {
	if v, ok := p["name"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Params returns the preset's placeholder values without the "name" key.
func (p Preset) Params() map[string]any {
	params := make(map[string]any, len(p))
	for k, v := range p {
		if k == "name" {
			continue
		}
		params[k] = v
	}
	return params
}

// GeneratedFile records one file produced by an experiment generation run.
type GeneratedFile struct {
	// Path is the written file path.
	Path string `json:"path" yaml:"path"`

	// Source is "grid" or "predefined".
	Source string `json:"source" yaml:"source"`

	// Name is the preset label for predefined configs, "" for grid entries.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Params holds the placeholder values substituted into this file.
	Params map[string]any `json:"params" yaml:"params"`

	// Identifier is the $IDENTIFIER value substituted into this file.
	Identifier string `json:"identifier" yaml:"identifier"`
}

// RunRecord is one experiment generation run as stored in the registry.
type RunRecord struct {
	// ID is the registry row identifier.
	ID int64 `json:"id" yaml:"id"`

	// CreatedAt is the run timestamp (UTC).
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Template is the template file path.
	Template string `json:"template" yaml:"template"`

	// Config is the experiment configuration file path.
	Config string `json:"config" yaml:"config"`

	// OutputDir is the timestamped directory the files were written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Identifier is the identifier prefix used for the run.
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	// FileCount is the number of files generated.
	FileCount int `json:"file_count" yaml:"file_count"`
}
