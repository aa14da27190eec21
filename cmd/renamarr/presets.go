package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage naming scheme presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and saved presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetsListCmd,
}

var presetsAddCmd = &cobra.Command{
	Use:   "add <name> <scheme>",
	Short: "Save a naming scheme under a name",
	Long: `Save a naming scheme under a name. Use it with --scheme "preset:<name>".

Example:
  renamarr presets add "Anime" "{n}/Season {s}/{n} - {s00e00} - {t}"`,
	Args: cobra.ExactArgs(2),
	RunE: runPresetsAddCmd,
}

var presetsRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a saved preset",
	Args:    cobra.ExactArgs(1),
	RunE:    runPresetsRmCmd,
}

var presetsMvCmd = &cobra.Command{
	Use:     "mv <name> <new-name>",
	Aliases: []string{"rename"},
	Short:   "Rename a saved preset",
	Args:    cobra.ExactArgs(2),
	RunE:    runPresetsMvCmd,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.AddCommand(presetsListCmd, presetsAddCmd, presetsRmCmd, presetsMvCmd)
}

func runPresetsListCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	list, err := client.Presets()
	if err != nil {
		return fmt.Errorf("presets fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(list)
		return nil
	}

	if len(list) == 0 {
		fmt.Println("No presets")
		return nil
	}
	fmt.Printf("  %-30s %-8s %s\n", "NAME", "TYPE", "SCHEME")
	fmt.Println("  " + strings.Repeat("-", 80))
	for _, p := range list {
		kind := "user"
		if p.BuiltIn {
			kind = "builtin"
		}
		fmt.Printf("  %-30s %-8s %s\n", truncate(p.Name, 30), kind, p.Scheme)
	}
	return nil
}

func runPresetsAddCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	p, err := client.SavePreset(args[0], args[1])
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	if jsonOutput {
		printJSON(p)
		return nil
	}
	fmt.Printf("Saved preset %q: %s\n", p.Name, p.Scheme)
	return nil
}

func runPresetsRmCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.DeletePreset(args[0]); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]any{"name": args[0], "deleted": true})
		return nil
	}
	fmt.Printf("Deleted preset %q\n", args[0])
	return nil
}

func runPresetsMvCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.RenamePreset(args[0], args[1]); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]any{"from": args[0], "name": args[1]})
		return nil
	}
	fmt.Printf("Renamed preset %q to %q\n", args[0], args[1])
	return nil
}
