// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/convert"
	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert markdown to LaTeX or cleaned markdown",
	Long: `Convert reads a markdown file — or an HTML file or http(s) URL,
normalized to markdown first — and re-emits it in one of two dialects:
compilable LaTeX source, or cleaned markdown with normalized math.

With --gdoc_math the cleaned markdown re-delimits inline math as $$...$$
and escapes underscores inside math, so the text pastes into Google Docs
without the previewer mangling equations and the Auto-LaTeX Equations
add-on still finds them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := toolsConfig().Convert

		if f, _ := cmd.Flags().GetString("format"); f != "" {
			cfg.Format = types.OutputFormat(f)
		}
		if cmd.Flags().Changed("gdoc_math") {
			cfg.GdocMath, _ = cmd.Flags().GetBool("gdoc_math")
		}
		if noRefs, _ := cmd.Flags().GetBool("no-references"); noRefs {
			cfg.IncludeReferences = false
		}

		output, _ := cmd.Flags().GetString("output")
		_, err := convert.File(cmd.Context(), args[0], output, cfg, os.Stdout)
		return err
	},
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file path (default: derived from input name)")
	convertCmd.Flags().String("format", "", "output dialect: markdown or latex")
	convertCmd.Flags().Bool("gdoc_math", false, "use $$ for inline math and escape underscores (for Google Docs with Auto-LaTeX Equations)")
	convertCmd.Flags().Bool("no-references", false, "disable the references section")

	rootCmd.AddCommand(convertCmd)
}
