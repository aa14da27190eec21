package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/internal/jobs"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Daemon health and job counts",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	health, err := client.Health()
	if err != nil {
		return fmt.Errorf("status fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(health)
		return nil
	}

	printStatus(health)
	return nil
}

func printStatus(h *HealthResponse) {
	fmt.Printf("renamarrd %s (%s)\n", h.Version, serverURL)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("  TMDB key:   %s\n", yesNo(h.TMDBKeySet))
	fmt.Printf("  TVDB key:   %s\n", yesNo(h.TVDBKeySet))
	fmt.Printf("  ffprobe:    %s\n", yesNo(h.MediaInfoAvailable))
	if h.PlexConnected != nil {
		fmt.Printf("  Plex:       %s\n", yesNo(*h.PlexConnected))
	}
	fmt.Println()
	fmt.Println("Jobs:")
	for _, s := range []jobs.Status{jobs.StatusPending, jobs.StatusRunning, jobs.StatusCompleted, jobs.StatusFailed, jobs.StatusCancelled} {
		fmt.Printf("  %-10s %d\n", s, h.Jobs[string(s)])
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
