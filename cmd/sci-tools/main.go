// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sci-tools CLI, a collection of
// small research-productivity utilities: the markdown dialect converter,
// the experiment script generator, the watermark cleaner, the source
// bundler, and the notebook runner. Each utility is a subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the sci-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "sci-tools",
	Short: "Personal research-productivity utilities",
	Long: `sci-tools bundles single-purpose text utilities used around paper writing
and experiment management: converting chat-generated markdown to LaTeX or
cleaned markdown, expanding hyperparameter grids into job scripts, stripping
text watermarks, concatenating source files, and running notebooks as
scripts.

Each utility is a subcommand reading its input files, performing one
transformation pass, and exiting.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sci-tools.yaml or ~/.config/sci-tools/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sci-tools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sci-tools"))
		}
	}

	viper.SetEnvPrefix("SCI_TOOLS")
	viper.AutomaticEnv()

	viper.SetDefault("convert.format", string(types.OutputMarkdown))
	viper.SetDefault("convert.include_references", true)
	viper.SetDefault("experiments.output_dir", "experiments")
	viper.SetDefault("experiments.output_prefix", "exp")
	viper.SetDefault("experiments.string_delimiter", `"`)
	viper.SetDefault("registry.dir", ".sci-tools")
	viper.SetDefault("registry.max_results", 20)
	viper.SetDefault("watermarks.preserve_spaces", true)
	viper.SetDefault("notebook.jupyter", "jupyter")
	viper.SetDefault("notebook.python", "python3")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// toolsConfig materializes the viper state into typed config.
func toolsConfig() types.ToolsConfig {
	return types.ToolsConfig{
		Convert: types.ConvertConfig{
			Format:            types.OutputFormat(viper.GetString("convert.format")),
			GdocMath:          viper.GetBool("convert.gdoc_math"),
			IncludeReferences: viper.GetBool("convert.include_references"),
		},
		Experiments: types.ExperimentsConfig{
			OutputDir:       viper.GetString("experiments.output_dir"),
			OutputPrefix:    viper.GetString("experiments.output_prefix"),
			StringDelimiter: viper.GetString("experiments.string_delimiter"),
		},
		Registry: types.RegistryConfig{
			Dir:        viper.GetString("registry.dir"),
			MaxResults: viper.GetInt("registry.max_results"),
		},
		Watermarks: types.WatermarksConfig{
			PreserveSpaces: viper.GetBool("watermarks.preserve_spaces"),
		},
		Notebook: types.NotebookConfig{
			Jupyter:    viper.GetString("notebook.jupyter"),
			Python:     viper.GetString("notebook.python"),
			KeepScript: viper.GetBool("notebook.keep_script"),
			Timeout:    viper.GetDuration("notebook.timeout"),
		},
	}
}

// now is injectable for tests.
var now = time.Now

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
