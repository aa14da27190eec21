package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/internal/jobs"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage rename jobs on the daemon",
}

var jobsSubmitCmd = &cobra.Command{
	Use:   "submit [flags] <paths...>",
	Short: "Submit a rename job",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runJobsSubmitCmd,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJobsListCmd,
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show job details and results",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShowCmd,
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a pending or running job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsCancelCmd,
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Cancel a job and forget it",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsDeleteCmd,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsSubmitCmd, jobsListCmd, jobsShowCmd, jobsCancelCmd, jobsDeleteCmd)

	addRenameFlags(jobsSubmitCmd)
	jobsSubmitCmd.Flags().BoolP("wait", "w", false, "Poll until the job finishes")
	jobsListCmd.Flags().StringP("status", "s", "", "Filter by status (pending, running, completed, failed, cancelled)")
}

var pollInterval = time.Second

func runJobsSubmitCmd(cmd *cobra.Command, args []string) error {
	wait, _ := cmd.Flags().GetBool("wait")

	req, err := requestFromFlags(cmd, args)
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	summary, err := client.SubmitJob(req)
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}

	if !wait {
		if jsonOutput {
			printJSON(summary)
			return nil
		}
		fmt.Printf("Submitted job %s (%d files)\n", summary.ID, len(req.Files))
		return nil
	}

	detail, err := waitForJob(client, summary.ID)
	if err != nil {
		return err
	}
	if jsonOutput {
		printJSON(detail)
	} else {
		printResults(*detail)
	}
	return jobError(detail.Summary)
}

func waitForJob(client *Client, id string) (*jobs.Detail, error) {
	for {
		detail, err := client.Job(id)
		if err != nil {
			return nil, fmt.Errorf("job fetch failed: %w", err)
		}
		if detail.Status.Terminal() {
			return detail, nil
		}
		time.Sleep(pollInterval)
	}
}

func runJobsListCmd(cmd *cobra.Command, args []string) error {
	statusFilter, _ := cmd.Flags().GetString("status")

	client := NewClient(serverURL)
	list, err := client.Jobs()
	if err != nil {
		return fmt.Errorf("jobs fetch failed: %w", err)
	}

	if statusFilter != "" {
		filtered := make([]jobs.Summary, 0, len(list))
		for _, j := range list {
			if strings.EqualFold(string(j.Status), statusFilter) {
				filtered = append(filtered, j)
			}
		}
		list = filtered
	}

	if jsonOutput {
		printJSON(list)
		return nil
	}

	printJobs(list)
	return nil
}

func printJobs(list []jobs.Summary) {
	if len(list) == 0 {
		fmt.Println("No jobs")
		return
	}

	fmt.Printf("Jobs (%d):\n\n", len(list))
	fmt.Printf("  %-36s %-10s %-9s %-7s %-7s %s\n", "ID", "STATUS", "PROGRESS", "RENAMED", "ERRORS", "CREATED")
	fmt.Println("  " + strings.Repeat("-", 90))
	for _, j := range list {
		progress := fmt.Sprintf("%d/%d", j.Progress.Current, j.Progress.Total)
		fmt.Printf("  %-36s %-10s %-9s %-7d %-7d %s\n",
			j.ID, j.Status, progress, j.RenamedCount, j.ErrorCount, formatTimeAgo(j.CreatedAt))
	}
}

func runJobsShowCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	detail, err := client.Job(args[0])
	if err != nil {
		return fmt.Errorf("job fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(detail)
		return nil
	}

	printJobDetail(detail)
	return nil
}

func printJobDetail(d *jobs.Detail) {
	fmt.Printf("Job %s\n", d.ID)
	fmt.Printf("  Status:   %s\n", d.Status)
	fmt.Printf("  Progress: %d/%d (%.0f%%)\n", d.Progress.Current, d.Progress.Total, d.Progress.Percent)
	fmt.Printf("  Created:  %s\n", d.CreatedAt.Local().Format(time.DateTime))
	if d.CompletedAt != nil {
		fmt.Printf("  Finished: %s\n", d.CompletedAt.Local().Format(time.DateTime))
	}
	fmt.Printf("  Scheme:   %s\n", d.Request.NamingScheme)
	fmt.Printf("  Source:   %s\n", d.Request.DataSource)
	if d.Request.DryRun {
		fmt.Println("  Dry run:  yes")
	}
	if d.Error != "" {
		fmt.Printf("  Error:    %s\n", d.Error)
	}
	fmt.Println()
	printResults(*d)
}

func runJobsCancelCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	resp, err := client.CancelJob(args[0])
	if err != nil {
		return fmt.Errorf("cancel failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Printf("Cancelled job %s\n", resp.JobID)
	return nil
}

func runJobsDeleteCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.DeleteJob(args[0]); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]any{"job_id": args[0], "deleted": true})
		return nil
	}
	fmt.Printf("Deleted job %s\n", args[0])
	return nil
}
