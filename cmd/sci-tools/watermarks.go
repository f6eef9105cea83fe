// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/watermarks"
)

var watermarksCmd = &cobra.Command{
	Use:   "watermarks <input>",
	Short: "Detect and strip text watermarks",
	Long: `Watermarks scans a text file for invisible Unicode characters,
homoglyph substitutions, exotic whitespace, and control characters, writes
a cleaned copy, and prints a summary of what was found. Occurrence
intervals are analyzed for signs of deliberate data encoding.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading input %s: %w", args[0], err)
		}

		cfg := toolsConfig().Watermarks
		if collapse, _ := cmd.Flags().GetBool("collapse-spaces"); collapse {
			cfg.PreserveSpaces = false
		}

		cleaned, report := watermarks.Clean(string(data), cfg)

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			stem := strings.TrimSuffix(args[0], ".txt")
			output = stem + "-clean.txt"
		}
		if err := os.WriteFile(output, []byte(cleaned), 0o644); err != nil {
			return fmt.Errorf("writing cleaned output %s: %w", output, err)
		}

		fmt.Print(watermarks.Summary(report))
		fmt.Printf("cleaned text written to %s\n", output)

		if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}
			if err := os.WriteFile(reportPath, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing report %s: %w", reportPath, err)
			}
			fmt.Printf("report written to %s\n", reportPath)
		}
		return nil
	},
}

func init() {
	watermarksCmd.Flags().StringP("output", "o", "", "cleaned output path (default: <input>-clean.txt)")
	watermarksCmd.Flags().String("report", "", "write the full findings report as JSON to this path")
	watermarksCmd.Flags().Bool("collapse-spaces", false, "collapse runs of multiple spaces to one")

	rootCmd.AddCommand(watermarksCmd)
}
