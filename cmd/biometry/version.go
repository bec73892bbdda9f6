// ABOUTME: CLI command printing the biometry version.
// ABOUTME: Kept store-free so it works without a database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the biometry version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("biometry %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
