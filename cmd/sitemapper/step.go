package main

import (
	"github.com/spf13/cobra"

	"github.com/hharuki/sitemapper/internal/scheduler"
)

// NewStepCmd creates the step command.
func NewStepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step <job-id>",
		Short: "Advance a crawl job by one depth level",
		Long: `Advance a crawl job by exactly one phase: the first invocation
processes the seeds, each following one processes the next depth level.
The partial site maps are re-exported after every step, so results can
be inspected between invocations.

Examples:
  # Process the seeds of job 3
  sitemapper step 3

  # Run again to process depth 1, and so on
  sitemapper step 3`,
		Args: cobra.ExactArgs(1),
		RunE: runStepCmd,
	}

	cmd.Flags().IntP("workers", "w", 0, "Worker pool width per partition (default from config)")
	cmd.Flags().Bool("no-headless", false, "Run Chrome with a visible window")

	return cmd
}

// runStepCmd executes the step command.
func runStepCmd(cmd *cobra.Command, args []string) error {
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	applyCrawlFlags(cmd, cfg)
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runJob(ctx, cfg, logger, jobID, func(s *scheduler.Scheduler) error {
		return s.StepDepth(ctx, jobID)
	})
}
