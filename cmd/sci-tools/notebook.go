// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/notebook"
)

var notebookCmd = &cobra.Command{
	Use:   "notebook <notebook.ipynb>",
	Short: "Run a Jupyter notebook as a script",
	Long: `Notebook converts a Jupyter notebook to a plain Python script with
jupyter nbconvert and runs it, streaming the output. The intermediate
script is removed afterwards unless --keep-script is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := toolsConfig().Notebook
		if jupyter, _ := cmd.Flags().GetString("jupyter"); jupyter != "" {
			cfg.Jupyter = jupyter
		}
		if python, _ := cmd.Flags().GetString("python"); python != "" {
			cfg.Python = python
		}
		if cmd.Flags().Changed("keep-script") {
			cfg.KeepScript, _ = cmd.Flags().GetBool("keep-script")
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
		}

		runner := notebook.NewRunner(cfg)
		if !runner.Available() {
			return fmt.Errorf("%s not found in PATH", cfg.Jupyter)
		}
		return runner.Run(cmd.Context(), args[0], os.Stdout, os.Stderr)
	},
}

func init() {
	notebookCmd.Flags().Bool("keep-script", false, "keep the converted .py script")
	notebookCmd.Flags().Duration("timeout", 0, "abort the run after this duration (0: no limit)")
	notebookCmd.Flags().String("jupyter", "", "jupyter executable (default: notebook.jupyter config)")
	notebookCmd.Flags().String("python", "", "python executable (default: notebook.python config)")

	rootCmd.AddCommand(notebookCmd)
}
