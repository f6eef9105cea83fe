// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// OutputFormat selects the converter output dialect.
type OutputFormat string

const (
	OutputMarkdown OutputFormat = "markdown"
	OutputLaTeX    OutputFormat = "latex"
)

// ConvertConfig holds settings for the markdown dialect converter.
type ConvertConfig struct {
	// Format selects the output dialect: markdown or latex.
	Format OutputFormat `json:"format" yaml:"format"`

	// GdocMath rewrites math delimiters for Google Docs paste targets
	// (the Auto-LaTeX Equations add-on recognizes $$...$$, and escaped
	// underscores survive the markdown preview).
	GdocMath bool `json:"gdoc_math" yaml:"gdoc_math"`

	// IncludeReferences appends a references section collecting all links
	// found in the document (default true).
	IncludeReferences bool `json:"include_references" yaml:"include_references"`
}

// ExperimentsConfig holds tool-level settings for the experiment generator.
type ExperimentsConfig struct {
	// OutputDir is the base name for generated experiment directories;
	// a timestamp suffix is appended per run (default "experiments").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OutputPrefix is the default prefix for generated file names (default "exp").
	OutputPrefix string `json:"output_prefix" yaml:"output_prefix"`

	// StringDelimiter wraps string values substituted into templates
	// (default double quote; empty string for none).
	StringDelimiter string `json:"string_delimiter" yaml:"string_delimiter"`
}

// RegistryConfig holds settings for the generation-run registry.
type RegistryConfig struct {
	// Dir is the directory holding the registry SQLite database
	// (default ".sci-tools").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// WatermarksConfig holds settings for the watermark cleaner.
type WatermarksConfig struct {
	// PreserveSpaces keeps runs of multiple spaces instead of collapsing
	// them (default true; runs are still reported).
	PreserveSpaces bool `json:"preserve_spaces" yaml:"preserve_spaces"`
}

// NotebookConfig holds settings for the notebook runner.
type NotebookConfig struct {
	// Jupyter is the jupyter binary name or path (default "jupyter").
	Jupyter string `json:"jupyter" yaml:"jupyter"`

	// Python is the interpreter used to run the converted script
	// (default "python3").
	Python string `json:"python" yaml:"python"`

	// KeepScript leaves the converted .py script on disk after the run.
	KeepScript bool `json:"keep_script" yaml:"keep_script"`

	// Timeout bounds the script execution; zero means no limit.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ToolsConfig groups all tool configurations.
type ToolsConfig struct {
	Convert     ConvertConfig     `json:"convert" yaml:"convert"`
	Experiments ExperimentsConfig `json:"experiments" yaml:"experiments"`
	Registry    RegistryConfig    `json:"registry" yaml:"registry"`
	Watermarks  WatermarksConfig  `json:"watermarks" yaml:"watermarks"`
	Notebook    NotebookConfig    `json:"notebook" yaml:"notebook"`
}
