// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/bundle"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle <file>...",
	Short: "Concatenate source files into one stream with shortened docs",
	Long: `Bundle concatenates the given source files into a single stream,
separating them with a header naming each file. Doc comments in Go files
are shortened to their first sentence so the bundle stays compact enough
to paste into a chat or review context.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var w io.Writer = os.Stdout
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		return bundle.Files(args, w)
	},
}

func init() {
	bundleCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(bundleCmd)
}
