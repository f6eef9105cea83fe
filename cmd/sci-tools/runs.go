// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/registry"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded experiment generation runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := registry.Open(toolsConfig().Registry)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.List(limit)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}

		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%4d  %s  %s  (%d files)\n",
				r.ID, r.CreatedAt.Local().Format(time.DateTime), r.OutputDir, r.FileCount)
			fmt.Printf("      template %s  config %s\n", r.Template, r.Config)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().Int("limit", 0, "maximum runs to list (default: registry.max_results)")
	runsCmd.Flags().Bool("json", false, "emit JSON instead of a table")

	rootCmd.AddCommand(runsCmd)
}
