package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of sci-tools",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sci-tools %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
