package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/internal/checksum"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum [flags] <files...>",
	Short: "Compute file checksums (local, no server needed)",
	Long: `Compute checksums for files and optionally write sidecar files.

Examples:
  renamarr checksum movie.mkv
  renamarr checksum --algo md5 --sfv *.mkv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChecksumCmd,
}

func init() {
	rootCmd.AddCommand(checksumCmd)
	checksumCmd.Flags().StringP("algo", "a", string(checksum.DefaultAlgorithm), "Algorithm (md5, sha1, sha256)")
	checksumCmd.Flags().Bool("sfv", false, "Write a sidecar file next to each input")
}

func runChecksumCmd(cmd *cobra.Command, args []string) error {
	algoName, _ := cmd.Flags().GetString("algo")
	sidecar, _ := cmd.Flags().GetBool("sfv")

	algo := checksum.Algorithm(strings.ToLower(algoName))
	if !algo.Valid() {
		return fmt.Errorf("%w: %s", checksum.ErrUnsupportedAlgorithm, algoName)
	}

	results := checksum.Files(args, algo, sidecar)
	if jsonOutput {
		printJSON(results)
	} else {
		for _, r := range results {
			if r.Error != "" {
				fmt.Printf("%-64s  %s (error: %s)\n", "-", r.File, r.Error)
				continue
			}
			fmt.Printf("%s  %s\n", r.Checksum, r.File)
			if r.Sidecar != "" {
				fmt.Printf("%-64s  wrote %s\n", "", r.Sidecar)
			}
		}
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
