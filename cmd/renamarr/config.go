package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long:  "Writes the default config.toml to path, or to the XDG config location when no path is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:     "check [path]",
	Aliases: []string{"test"},
	Short:   "Validate configuration file",
	Long:    "Validates config.toml syntax, values and environment variable substitution without starting the server.",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runConfigCheck,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configCheckCmd)
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Set TMDB_API_KEY (and TVDB_API_KEY for TheTVDB) or edit the file, then run 'renamarr config check'.")
	return nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Server:     %s (log: %s)\n", cfg.ListenAddr(), cfg.Server.LogLevel)
	fmt.Printf("  Database:   %s\n", cfg.Server.Database)
	fmt.Printf("  Source:     %s (language: %s)\n", cfg.Matching.DefaultSource, cfg.TMDB.Language)
	fmt.Printf("  Scheme:     %s\n", cfg.Renaming.NamingScheme)
	fmt.Printf("  Operation:  %s\n", cfg.Renaming.Operation)
	if cfg.Renaming.OutputDir != "" {
		fmt.Printf("  Output:     %s\n", cfg.Renaming.OutputDir)
	}

	keys := []string{}
	if cfg.TMDB.APIKey != "" {
		keys = append(keys, "tmdb")
	}
	if cfg.TVDB.APIKey != "" {
		keys = append(keys, "tvdb")
	}
	if len(keys) == 0 {
		keys = append(keys, "none")
	}
	fmt.Printf("  API keys:   %s\n", strings.Join(keys, ", "))

	if len(cfg.Watch) > 0 {
		names := make([]string, 0, len(cfg.Watch))
		for _, w := range cfg.Watch {
			names = append(names, fmt.Sprintf("%s (%s)", w.Name, w.Schedule))
		}
		fmt.Printf("  Watches:    %s\n", strings.Join(names, ", "))
	}

	if cfg.Plex != nil {
		fmt.Printf("  Plex:       %s\n", cfg.Plex.URL)
	}
}
