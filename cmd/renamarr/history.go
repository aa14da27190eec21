package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/internal/importer"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent renames, or undo and redo them",
	Long: `Show recent renames recorded by the daemon.

Examples:
  renamarr history
  renamarr history --limit 10
  renamarr history --undo    # move the latest rename back
  renamarr history --redo    # reapply the last undone rename`,
	Args: cobra.NoArgs,
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "l", 20, "Number of entries to show")
	historyCmd.Flags().Bool("undo", false, "Undo the most recent rename")
	historyCmd.Flags().Bool("redo", false, "Redo the most recently undone rename")
	historyCmd.MarkFlagsMutuallyExclusive("undo", "redo")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	undo, _ := cmd.Flags().GetBool("undo")
	redo, _ := cmd.Flags().GetBool("redo")

	client := NewClient(serverURL)

	switch {
	case undo:
		entry, err := client.Undo()
		if err != nil {
			return fmt.Errorf("undo failed: %w", err)
		}
		return printHistoryChange("Undone", entry, entry.NewPath, entry.OriginalPath)
	case redo:
		entry, err := client.Redo()
		if err != nil {
			return fmt.Errorf("redo failed: %w", err)
		}
		return printHistoryChange("Redone", entry, entry.OriginalPath, entry.NewPath)
	}

	resp, err := client.History(limit)
	if err != nil {
		return fmt.Errorf("history fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	printHistory(resp)
	return nil
}

func printHistoryChange(verb string, entry *importer.HistoryEntry, from, to string) error {
	if jsonOutput {
		printJSON(entry)
		return nil
	}
	fmt.Printf("%s #%d\n  %s\n  -> %s\n", verb, entry.ID, from, to)
	return nil
}

func printHistory(h *HistoryResponse) {
	if len(h.Entries) == 0 {
		fmt.Println("No history")
		return
	}

	fmt.Printf("History (%d):\n\n", h.Total)
	fmt.Printf("  %-5s %-5s %-10s %s\n", "ID", "OP", "WHEN", "RENAME")
	fmt.Println("  " + strings.Repeat("-", 80))
	for _, e := range h.Entries {
		op := e.Operation
		if e.UndoneAt != nil {
			op += "*"
		}
		fmt.Printf("  %-5d %-5s %-10s %s\n", e.ID, op, formatTimeAgo(e.CreatedAt), e.OriginalPath)
		fmt.Printf("  %-5s %-5s %-10s -> %s\n", "", "", "", e.NewPath)
	}

	var hints []string
	if h.CanUndo {
		hints = append(hints, "--undo")
	}
	if h.CanRedo {
		hints = append(hints, "--redo")
	}
	if len(hints) > 0 {
		fmt.Printf("\nAvailable: %s (* = undone)\n", strings.Join(hints, ", "))
	}
}
