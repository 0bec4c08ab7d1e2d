package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command.
func NewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a job and its artifacts",
		Long: `Delete a job: its row, all of its link records, and the on-disk job
directory (saved markup, downloaded documents, exported site maps).`,
		Args: cobra.ExactArgs(1),
		RunE: runDeleteCmd,
	}
}

// runDeleteCmd executes the delete command.
func runDeleteCmd(cmd *cobra.Command, args []string) error {
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

	if err := reg.DeleteJob(cmd.Context(), jobID); err != nil {
		return err
	}

	// The artifact directory goes with the rows. A failure here leaves
	// only orphaned files behind, so it is reported but not fatal.
	if err := os.RemoveAll(cfg.JobDir(jobID)); err != nil {
		logger.Warn("failed to remove job directory",
			"job_id", jobID,
			"path", cfg.JobDir(jobID),
			"error", err,
		)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted job %d\n", jobID)
	return nil
}
