package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hharuki/sitemapper/internal/registry"
	"github.com/hharuki/sitemapper/internal/report"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [job-id]",
		Short: "Show job status",
		Long: `Show the status of one job (lifecycle state, depth progress, node
counts by kind) or, without an argument, a one-line listing of all
jobs.

Examples:
  # List all jobs
  sitemapper status

  # Full status of job 3
  sitemapper status 3

  # Machine-readable status
  sitemapper status --json 3

  # Markdown, e.g. for pasting into an issue
  sitemapper status --markdown 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStatusCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")

	return cmd
}

// runStatusCmd executes the status command.
func runStatusCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	asJSON, _ := cmd.Flags().GetBool("json")         //nolint:errcheck // flag is registered
	asMarkdown, _ := cmd.Flags().GetBool("markdown") //nolint:errcheck // flag is registered
	if asJSON && asMarkdown {
		return fmt.Errorf("--json and --markdown are mutually exclusive")
	}

	reg, err := openRegistry(cfg, logger, false)
	if err != nil {
		return err
	}
	defer reg.Close() //nolint:errcheck // process exits after

	if len(args) == 0 {
		return listJobs(cmd, reg)
	}

	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	job, err := reg.Job(cmd.Context(), jobID)
	if err != nil {
		return err
	}
	counts, err := reg.KindCounts(cmd.Context(), jobID)
	if err != nil {
		return err
	}

	var w report.Writer
	switch {
	case asJSON:
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	case asMarkdown:
		w = report.NewMarkdownWriter(cmd.OutOrStdout())
	default:
		w = report.NewSimpleWriter(cmd.OutOrStdout())
	}

	_, err = w.WriteSummary(report.NewSummary(job, counts))
	return err
}

// listJobs prints a one-line overview per job.
func listJobs(cmd *cobra.Command, reg *registry.Registry) error {
	jobs, err := reg.Jobs(cmd.Context())
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no jobs")
		return nil
	}

	for _, job := range jobs {
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-10s  depth %d/%d  %4d links  %s\n",
			job.ID, job.Status, job.CurrentDepth, job.MaxDepth, job.TotalLinks, job.Name)
	}
	return nil
}
