package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hharuki/sitemapper/internal/model"
)

// NewStopCmd creates the stop command.
func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <job-id>",
		Short: "Request a running crawl job to stop",
		Long: `Request a running crawl job to stop. The request is cooperative: it
flips the job row in the shared database, and the crawling process
honors it at the next depth boundary. Work inside the current depth
level runs to completion.`,
		Args: cobra.ExactArgs(1),
		RunE: runStopCmd,
	}
}

// runStopCmd executes the stop command.
func runStopCmd(cmd *cobra.Command, args []string) error {
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	reg, err := openRegistry(cfg, logger, false)
	if err != nil {
		return err
	}
	defer reg.Close() //nolint:errcheck // process exits after

	job, err := reg.Job(cmd.Context(), jobID)
	if err != nil {
		return err
	}
	if job.Status.Terminal() {
		fmt.Fprintf(cmd.OutOrStdout(), "job %d is already %s\n", jobID, job.Status)
		return nil
	}

	if err := reg.UpdateJobStatus(cmd.Context(), jobID, model.StatusStopped); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stop requested for job %d; it takes effect at the next depth boundary\n", jobID)
	return nil
}
