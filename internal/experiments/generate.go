// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiments

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

// placeholderPattern matches $PLACEHOLDER_NAME fields in a template.
var placeholderPattern = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

// Options controls one generation run.
type Options struct {
	// IDPrefix, FilePrefix, OutputDir, and Delimiter override the
	// corresponding config values when non-nil.
	IDPrefix   *string
	FilePrefix *string
	OutputDir  *string
	Delimiter  *string

	// DryRun reports what would be generated without writing anything.
	DryRun bool

	// Verbose reports unreplaced placeholders per generated file.
	Verbose bool

	// Now stamps the output directory and date fields; the zero value
	// means time.Now.
	Now time.Time
}

// Result summarizes a generation run.
type Result struct {
	// OutputDir is the timestamped directory files were written to
	// (empty for dry runs).
	OutputDir string

	// Script is the path of the generated execution script.
	Script string

	// Identifier is the identifier prefix used.
	Identifier string

	// Files lists every generated file.
	Files []types.GeneratedFile

	// Failed counts files that could not be written.
	Failed int
}

// config holds one resolved parameter set awaiting generation.
type config struct {
	source string // "grid" or "predefined"
	name   string
	params map[string]any
}

// Run expands the experiment spec against the template and writes the
// generated files plus an execution script. Flag overrides and tool-config
// defaults are resolved here, command-line value winning over config file
// winning over default.
func Run(templatePath string, spec *types.ExperimentSpec, cfg types.ExperimentsConfig, opts Options, w io.Writer) (*Result, error) {
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", templatePath, err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	resolve(spec, cfg, opts)
	reportTemplate(w, templatePath, string(template))

	configs := collect(spec)
	fmt.Fprintf(w, "Total configurations to generate: %d\n", len(configs))

	ext := spec.FileExtension
	if ext == "" {
		ext = filepath.Ext(templatePath)
	} else if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	if opts.DryRun {
		fmt.Fprintf(w, "Dry run: would generate %d file(s)\n", len(configs))
		return &Result{Identifier: spec.ID}, nil
	}

	outputDir := fmt.Sprintf("%s_%s", spec.OutputDir, now.Format("20060102_150405"))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	result := &Result{OutputDir: outputDir, Identifier: spec.ID}
	delimiter := `"`
	if spec.StringDelimiter != nil {
		delimiter = *spec.StringDelimiter
	}

	for i, c := range configs {
		filePrefix, fileName := generateFilename(spec.OutputPrefix, c, i+1)
		outPath := filepath.Join(outputDir, fileName+ext)

		merged := make(map[string]any, len(spec.Replacements)+len(c.params))
		for k, v := range spec.Replacements {
			merged[k] = v
		}
		for k, v := range c.params {
			merged[k] = v
		}

		id := identifier(c.params, spec.ID, filePrefix, now)
		content := applyReplacements(string(template), merged, id, delimiter)

		if opts.Verbose {
			warnUnreplaced(w, c.name, content)
		}

		if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", outPath, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "wrote   %s\n", outPath)
		result.Files = append(result.Files, types.GeneratedFile{
			Path:       outPath,
			Source:     c.source,
			Name:       c.name,
			Params:     c.params,
			Identifier: id,
		})
	}

	script, err := writeExecutionScript(outputDir, spec.OutputPrefix, result.Files, now)
	if err != nil {
		return result, err
	}
	result.Script = script
	fmt.Fprintf(w, "execution script: %s\n", script)

	return result, nil
}

// resolve applies flag overrides and tool-config defaults onto the spec.
func resolve(spec *types.ExperimentSpec, cfg types.ExperimentsConfig, opts Options) {
	if opts.IDPrefix != nil {
		spec.ID = *opts.IDPrefix
	}
	if opts.FilePrefix != nil {
		spec.OutputPrefix = *opts.FilePrefix
	}
	if opts.OutputDir != nil {
		spec.OutputDir = *opts.OutputDir
	}
	if opts.Delimiter != nil {
		spec.StringDelimiter = opts.Delimiter
	}

	if spec.OutputDir == "" {
		spec.OutputDir = cfg.OutputDir
	}
	if spec.OutputDir == "" {
		spec.OutputDir = "experiments"
	}
	if spec.OutputPrefix == "" {
		spec.OutputPrefix = cfg.OutputPrefix
	}
	if spec.OutputPrefix == "" {
		spec.OutputPrefix = "exp"
	}
	if spec.StringDelimiter == nil && cfg.StringDelimiter != "" {
		d := cfg.StringDelimiter
		spec.StringDelimiter = &d
	}
}

// collect orders the parameter sets: presets first, then the grid cartesian
// product.
func collect(spec *types.ExperimentSpec) []config {
	var configs []config
	for i, preset := range spec.PredefinedConfigs {
		name := preset.Name()
		if name == "" {
			name = fmt.Sprintf("preset_%d", i+1)
		}
		configs = append(configs, config{source: "predefined", name: name, params: preset.Params()})
	}
	for _, params := range Combinations(spec.GridSearch) {
		configs = append(configs, config{source: "grid", params: params})
	}
	return configs
}

// Combinations expands a grid into the cartesian product of its value
// lists. Keys are processed in sorted order so output is deterministic.
func Combinations(grid map[string][]any) []map[string]any {
	if len(grid) == 0 {
		return nil
	}

	keys := make([]string, 0, len(grid))
	for k := range grid {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	combos := []map[string]any{{}}
	for _, key := range keys {
		var next []map[string]any
		for _, combo := range combos {
			for _, value := range grid[key] {
				m := make(map[string]any, len(combo)+1)
				for k, v := range combo {
					m[k] = v
				}
				m[key] = value
				next = append(next, m)
			}
		}
		combos = next
	}
	return combos
}

// applyReplacements substitutes $IDENTIFIER, $RAWIDENTIFIER, and every
// parameter placeholder into the template. Longer keys are substituted
// first so $LEARNING cannot eat $LEARNING_RATE.
func applyReplacements(template string, params map[string]any, id, delimiter string) string {
	out := strings.ReplaceAll(template, "$RAWIDENTIFIER", id)
	out = strings.ReplaceAll(out, "$IDENTIFIER", delimiter+id+delimiter)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		value := formatValue(params[k])
		if _, isString := params[k].(string); isString {
			value = delimiter + value + delimiter
		}
		out = strings.ReplaceAll(out, "$"+k, value)
	}
	return out
}

// warnUnreplaced lists placeholders that survived substitution.
func warnUnreplaced(w io.Writer, name, content string) {
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		seen[m[1]] = true
	}
	if len(seen) == 0 {
		return
	}

	remaining := make([]string, 0, len(seen))
	for p := range seen {
		remaining = append(remaining, p)
	}
	sort.Strings(remaining)

	label := ""
	if name != "" {
		label = fmt.Sprintf(" in config %q", name)
	}
	fmt.Fprintf(w, "warning%s: %d placeholder(s) not replaced: %s\n",
		label, len(remaining), strings.Join(remaining, ", "))
}

// generateFilename derives the numbered file name for one config,
// returning both the prefix_counter stem and the full descriptive name.
func generateFilename(prefix string, c config, counter int) (string, string) {
	stem := fmt.Sprintf("%s_%d", prefix, counter)
	parts := []string{stem}

	if c.name != "" {
		parts = append(parts, sanitizeFilename(c.name))
	}

	keys := make([]string, 0, len(c.params))
	for k := range c.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts,
			fmt.Sprintf("%s_%s", sanitizeFilename(k), sanitizeFilename(formatValue(c.params[k]))))
	}

	return stem, strings.Join(parts, "_")
}

// writeExecutionScript emits a shell script that runs every generated file,
// dispatching on extension: sbatch for .sbatch, bash for .sh, python for .py.
func writeExecutionScript(dir, prefix string, files []types.GeneratedFile, now time.Time) (string, error) {
	path := filepath.Join(dir, prefix+"_execute_all.sh")

	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString("# Auto-generated execution script\n")
	fmt.Fprintf(&b, "# Generated at: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "# Total files: %d\n\n", len(files))

	for _, f := range files {
		if f.Name != "" {
			fmt.Fprintf(&b, "# Config: %s (%s)\n", f.Name, f.Source)
		} else {
			fmt.Fprintf(&b, "# Config: %s\n", f.Source)
		}
		fmt.Fprintf(&b, "# Identifier: %s\n", f.Identifier)

		switch filepath.Ext(f.Path) {
		case ".sbatch":
			fmt.Fprintf(&b, "sbatch %s\n", f.Path)
		case ".sh":
			fmt.Fprintf(&b, "bash %s\n", f.Path)
		case ".py":
			fmt.Fprintf(&b, "python %s\n", f.Path)
		default:
			fmt.Fprintf(&b, "# Execute: %s\n", f.Path)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		return "", fmt.Errorf("writing execution script %s: %w", path, err)
	}
	return path, nil
}

// reportTemplate echoes template statistics: size and detected placeholders.
func reportTemplate(w io.Writer, path, template string) {
	fmt.Fprintf(w, "Template %s: %d characters, %d lines\n",
		path, len(template), strings.Count(template, "\n")+1)

	counts := make(map[string]int)
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		counts[m[1]]++
	}
	if len(counts) == 0 {
		fmt.Fprintln(w, "warning: no placeholders detected in template")
		return
	}

	names := make([]string, 0, len(counts))
	for p := range counts {
		names = append(names, p)
	}
	sort.Strings(names)
	for _, p := range names {
		fmt.Fprintf(w, "  $%s (used %d time(s))\n", p, counts[p])
	}
}
