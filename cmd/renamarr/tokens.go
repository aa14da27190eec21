package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/internal/importer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List naming scheme tokens (local, no server needed)",
	Long: `List the placeholders a naming scheme can use, or preview a scheme
against a sample movie and episode.

Examples:
  renamarr tokens
  renamarr tokens --preview "{n} ({y})/{n} ({y}) [{vf}]"`,
	Args: cobra.NoArgs,
	RunE: runTokensCmd,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().StringP("preview", "p", "", "Render a scheme against sample matches")
}

type previewResult struct {
	Scheme string `json:"scheme"`
	Movie  string `json:"movie"`
	TV     string `json:"tv"`
}

func runTokensCmd(cmd *cobra.Command, args []string) error {
	scheme, _ := cmd.Flags().GetString("preview")

	if scheme != "" {
		p := previewResult{
			Scheme: scheme,
			Movie:  importer.Preview(scheme, false),
			TV:     importer.Preview(scheme, true),
		}
		if jsonOutput {
			printJSON(p)
			return nil
		}
		fmt.Printf("Scheme: %s\n", p.Scheme)
		fmt.Printf("  Movie: %s\n", p.Movie)
		fmt.Printf("  TV:    %s\n", p.TV)
		return nil
	}

	if jsonOutput {
		printJSON(importer.Tokens)
		return nil
	}

	fmt.Printf("  %-14s %-30s %s\n", "TOKEN", "DESCRIPTION", "EXAMPLE")
	fmt.Println("  " + strings.Repeat("-", 70))
	for _, t := range importer.Tokens {
		fmt.Printf("  %-14s %-30s %s\n", t.Token, t.Description, t.Example)
	}
	return nil
}
