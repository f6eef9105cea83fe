// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/experiments"
	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/registry"
	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

var experimentsCmd = &cobra.Command{
	Use:   "experiments <template> <config>",
	Short: "Generate experiment files from a template and a parameter grid",
	Long: `Experiments expands a YAML or JSON parameter specification against a
template file, writing one output file per parameter combination into a
timestamped directory plus a shell script that executes them all.

Predefined named configurations come first, then the cartesian product of
the grid_search lists. $PLACEHOLDER fields in the template are substituted
per combination; $IDENTIFIER expands to a sortable run identifier.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		templatePath, configPath := args[0], args[1]

		spec, err := experiments.LoadSpec(configPath)
		if err != nil {
			return err
		}

		cfg := toolsConfig()
		opts := experiments.Options{Now: now()}
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.Verbose, _ = cmd.Flags().GetBool("verbose")
		if cmd.Flags().Changed("id_prefix") {
			v, _ := cmd.Flags().GetString("id_prefix")
			opts.IDPrefix = &v
		}
		if cmd.Flags().Changed("file_prefix") {
			v, _ := cmd.Flags().GetString("file_prefix")
			opts.FilePrefix = &v
		}
		if cmd.Flags().Changed("output_dir") {
			v, _ := cmd.Flags().GetString("output_dir")
			opts.OutputDir = &v
		}
		if cmd.Flags().Changed("delimiter") {
			v, _ := cmd.Flags().GetString("delimiter")
			opts.Delimiter = &v
		}

		result, err := experiments.Run(templatePath, spec, cfg.Experiments, opts, os.Stdout)
		if err != nil {
			return err
		}
		if result.Failed > 0 {
			return fmt.Errorf("%d file(s) failed to generate", result.Failed)
		}

		noRegistry, _ := cmd.Flags().GetBool("no-registry")
		if !opts.DryRun && !noRegistry {
			recordRun(templatePath, configPath, result, cfg.Registry)
		}
		return nil
	},
}

// recordRun stores the run in the registry. Registry failures are reported
// but never fail the generation, which already happened on disk.
func recordRun(templatePath, configPath string, result *experiments.Result, cfg types.RegistryConfig) {
	store, err := registry.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: opening run registry: %v\n", err)
		return
	}
	defer store.Close()

	_, err = store.Record(types.RunRecord{
		Template:   templatePath,
		Config:     configPath,
		OutputDir:  result.OutputDir,
		Identifier: result.Identifier,
		FileCount:  len(result.Files),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run: %v\n", err)
	}
}

func init() {
	experimentsCmd.Flags().StringP("id_prefix", "i", "", "identifier prefix (overrides the config file)")
	experimentsCmd.Flags().StringP("file_prefix", "p", "", "generated file name prefix (overrides the config file)")
	experimentsCmd.Flags().StringP("output_dir", "o", "", "output directory prefix (overrides the config file)")
	experimentsCmd.Flags().StringP("delimiter", "d", "", "delimiter wrapped around string values")
	experimentsCmd.Flags().Bool("dry-run", false, "report what would be generated without writing files")
	experimentsCmd.Flags().BoolP("verbose", "v", false, "warn about unreplaced placeholders per file")
	experimentsCmd.Flags().Bool("no-registry", false, "skip recording the run in the registry")

	rootCmd.AddCommand(experimentsCmd)
}
