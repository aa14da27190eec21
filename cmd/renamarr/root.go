package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "renamarr",
	Short: "Rename and organize media files",
	Long: `renamarr - match media files against TMDB or TVDB and rename them

Commands either run locally (parse, rename, checksum, tokens, config)
or talk to a running daemon (jobs, presets, history, status).

Run 'renamarrd' to start the server daemon.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8585", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("renamarr {{.Version}}\n")
}
