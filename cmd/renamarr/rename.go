package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/internal/config"
	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/metadata"
	"github.com/vmunix/renamarr/internal/server"
)

var renameCmd = &cobra.Command{
	Use:   "rename [flags] <paths...>",
	Short: "Match and rename files (runs locally)",
	Long: `Match files and directories against TMDB or TVDB and rename them
according to a naming scheme. Runs in-process using the config file;
no daemon is needed.

Examples:
  renamarr rename ~/Downloads/The.Matrix.1999.1080p.mkv
  renamarr rename --dry-run --scheme "{n} - {s00e00} - {t}" --source tvdb ~/Downloads/tv
  renamarr rename --copy --output /media/movies --scheme "preset:Plex - Movie (folder)" ~/Downloads`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRenameCmd,
}

func init() {
	rootCmd.AddCommand(renameCmd)
	addRenameFlags(renameCmd)
	renameCmd.Flags().String("config", "", "Path to config file (default: discovered)")
	renameCmd.Flags().BoolP("verbose", "v", false, "Log progress to stderr")
}

// addRenameFlags registers the flags shared by rename and jobs submit.
func addRenameFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("scheme", "s", "", "Naming scheme or preset:<name>")
	cmd.Flags().String("source", "", "Data source (tmdb, tvdb)")
	cmd.Flags().StringP("output", "o", "", "Output directory")
	cmd.Flags().Bool("copy", false, "Copy instead of move")
	cmd.Flags().BoolP("dry-run", "n", false, "Show what would happen without touching files")
	cmd.Flags().Bool("artwork", false, "Download poster artwork")
	cmd.Flags().Bool("nfo", false, "Write .nfo metadata")
	cmd.Flags().String("language", "", "Metadata language (e.g. en, de)")
	cmd.Flags().Bool("overwrite", false, "Replace existing destination files")
	cmd.Flags().String("webhook", "", "URL to notify when the job finishes")

	_ = cmd.RegisterFlagCompletionFunc("scheme", completeSchemes)
	_ = cmd.RegisterFlagCompletionFunc("source", cobra.FixedCompletions([]string{"tmdb", "tvdb"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.MarkFlagDirname("output")
}

// requestFromFlags builds a job request from the shared rename flags.
// Paths are made absolute so they resolve the same way in the daemon.
func requestFromFlags(cmd *cobra.Command, paths []string) (SubmitRequest, error) {
	req := SubmitRequest{Files: make([]string, 0, len(paths))}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return req, fmt.Errorf("resolve %s: %w", p, err)
		}
		req.Files = append(req.Files, abs)
	}

	req.NamingScheme, _ = cmd.Flags().GetString("scheme")
	if source, _ := cmd.Flags().GetString("source"); source != "" {
		req.DataSource = string(server.DataSource(source))
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		abs, err := filepath.Abs(output)
		if err != nil {
			return req, fmt.Errorf("resolve %s: %w", output, err)
		}
		req.OutputDir = abs
	}
	if cp, _ := cmd.Flags().GetBool("copy"); cp {
		req.Operation = string(jobs.OpCopy)
	}
	req.DryRun, _ = cmd.Flags().GetBool("dry-run")
	req.DownloadArtwork, _ = cmd.Flags().GetBool("artwork")
	req.WriteMetadata, _ = cmd.Flags().GetBool("nfo")
	req.Language, _ = cmd.Flags().GetString("language")
	req.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	req.WebhookURL, _ = cmd.Flags().GetString("webhook")
	return req, nil
}

func (r SubmitRequest) toJobRequest() jobs.Request {
	return jobs.Request{
		Files:           r.Files,
		DataSource:      metadata.DataSource(r.DataSource),
		NamingScheme:    r.NamingScheme,
		OutputDir:       r.OutputDir,
		Operation:       jobs.Operation(r.Operation),
		DryRun:          r.DryRun,
		DownloadArtwork: r.DownloadArtwork,
		WriteMetadata:   r.WriteMetadata,
		Language:        r.Language,
		Overwrite:       r.Overwrite,
		WebhookURL:      r.WebhookURL,
	}
}

func runRenameCmd(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	req, err := requestFromFlags(cmd, args)
	if err != nil {
		return err
	}
	jobReq := req.toJobRequest()
	jobReq.DownloadArtwork = jobReq.DownloadArtwork || cfg.Renaming.DownloadArtwork
	jobReq.WriteMetadata = jobReq.WriteMetadata || cfg.Renaming.WriteMetadata
	jobReq.Overwrite = jobReq.Overwrite || cfg.Renaming.Overwrite
	if jobReq.OutputDir == "" {
		jobReq.OutputDir = cfg.Renaming.OutputDir
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	svc, err := server.Open(cfg, version, logger)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := jobs.NewQueue(ctx, svc.Runner, 1, logger)
	job := queue.Submit(jobReq)
	<-job.Done()

	detail := job.Detail()
	if jsonOutput {
		printJSON(detail)
	} else {
		printResults(detail)
	}
	return jobError(detail.Summary)
}

// loadConfig loads and validates the config at path, or the discovered one.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return nil, fmt.Errorf("%w (run 'renamarr config init' to create one)", err)
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return nil, fmt.Errorf("configuration invalid: %s", path)
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// jobError turns a failed or partially failed job into a non-zero exit.
func jobError(s jobs.Summary) error {
	switch {
	case s.Status == jobs.StatusFailed:
		return fmt.Errorf("job failed: %s", s.Error)
	case s.Status == jobs.StatusCancelled:
		return errors.New("job cancelled")
	case s.ErrorCount > 0:
		return fmt.Errorf("%d of %d files failed", s.ErrorCount, s.FileCount)
	}
	return nil
}

func printResults(d jobs.Detail) {
	if len(d.Results) == 0 {
		fmt.Println("No media files found")
		return
	}

	fmt.Printf("  %-9s %s\n", "STATUS", "FILE")
	fmt.Println("  " + strings.Repeat("-", 70))
	for _, r := range d.Results {
		fmt.Printf("  %-9s %s\n", resultStatus(r), r.Original)
		switch {
		case r.Error != "":
			fmt.Printf("  %-9s   %s\n", "", r.Error)
		case r.Destination != "":
			fmt.Printf("  %-9s   -> %s\n", "", r.Destination)
		}
	}

	fmt.Printf("\n%d renamed, %d conflicts, %d errors (%s)\n",
		d.RenamedCount, d.ConflictCount, d.ErrorCount, d.Status)
}

func resultStatus(r jobs.Result) string {
	switch {
	case r.Conflict:
		return "conflict"
	case !r.Success:
		return "error"
	case r.DryRun:
		return "dry-run"
	default:
		return "renamed"
	}
}
