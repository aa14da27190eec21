package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/pkg/release"
)

// ParseResult is the parsed form of one filename.
type ParseResult struct {
	Filename   string `json:"filename"`
	Title      string `json:"title"`
	Year       *int   `json:"year,omitempty"`
	Season     *int   `json:"season,omitempty"`
	Episode    *int   `json:"episode,omitempty"`
	IsTV       bool   `json:"is_tv"`
	Resolution string `json:"resolution,omitempty"`
	Source     string `json:"source,omitempty"`
	Codec      string `json:"codec,omitempty"`
	Audio      string `json:"audio,omitempty"`
	Channels   string `json:"channels,omitempty"`
	BitDepth   string `json:"bit_depth,omitempty"`
}

func parseFilename(name string) ParseResult {
	info := release.Parse(name)
	tech := release.ParseTech(name)
	return ParseResult{
		Filename:   name,
		Title:      info.Title,
		Year:       info.Year,
		Season:     info.Season,
		Episode:    info.Episode,
		IsTV:       info.IsTV,
		Resolution: tech.Resolution.String(),
		Source:     tech.Source.String(),
		Codec:      tech.Codec.String(),
		Audio:      tech.Audio.String(),
		Channels:   tech.Channels,
		BitDepth:   tech.BitDepth,
	}
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <filename>",
	Short: "Parse a media filename (local, no server needed)",
	Long: `Parse a filename to extract title, year, season and episode.

Examples:
  renamarr parse "The.Matrix.1999.1080p.BluRay.x264.mkv"
  renamarr parse "Breaking.Bad.S01E02.720p.HDTV.mkv" --json
  renamarr parse --file names.txt`,
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("file", "f", "", "Read filenames from file (one per line)")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("file")

	var names []string
	switch {
	case inputFile != "":
		lines, err := readLines(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		names = lines
	case len(args) > 0:
		names = args
	default:
		return fmt.Errorf("usage: renamarr parse <filename> or renamarr parse --file <path>")
	}

	results := make([]ParseResult, 0, len(names))
	for _, name := range names {
		results = append(results, parseFilename(name))
	}

	if jsonOutput {
		if len(results) == 1 {
			printJSON(results[0])
		} else {
			printJSON(results)
		}
		return nil
	}

	for i, r := range results {
		if i > 0 {
			fmt.Println()
		}
		printParseResult(r)
	}
	return nil
}

func printParseResult(r ParseResult) {
	fmt.Printf("Filename:   %s\n", r.Filename)
	fmt.Printf("Title:      %s\n", r.Title)
	if r.Year != nil {
		fmt.Printf("Year:       %d\n", *r.Year)
	}
	if r.IsTV {
		fmt.Printf("Episode:    S%02dE%02d\n", deref(r.Season), deref(r.Episode))
	}
	tech := []string{}
	for _, v := range []string{r.Resolution, r.Source, r.Codec, r.Audio, r.Channels, r.BitDepth} {
		if v != "" {
			tech = append(tech, v)
		}
	}
	if len(tech) > 0 {
		fmt.Printf("Tech:       %s\n", strings.Join(tech, " "))
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
