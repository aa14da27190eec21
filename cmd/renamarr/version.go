package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			printJSON(map[string]string{"version": version})
			return
		}
		fmt.Printf("renamarr %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
