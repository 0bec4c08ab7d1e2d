package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewNewCmd creates the new command.
func NewNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [seed-url...]",
		Short: "Create a crawl job",
		Long: `Create a crawl job from one or more seed URLs.

The job is recorded as pending; run it with 'sitemapper crawl <job-id>'
or advance it one depth at a time with 'sitemapper step <job-id>'.

Examples:
  # One seed, default depth
  sitemapper new --name "city site" https://example.com

  # Multiple seeds and a custom depth
  sitemapper new --name portals -d 2 https://example.com https://example.org

  # Seeds from a file, one URL per line (blank lines ignored)
  sitemapper new --name batch --seeds-file seeds.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runNewCmd,
	}

	cmd.Flags().StringP("name", "n", "", "Job name (defaults to the first seed)")
	cmd.Flags().IntP("depth", "d", 0, "Maximum click depth (default from config)")
	cmd.Flags().StringP("seeds-file", "f", "", "File with one seed URL per line")

	return cmd
}

// runNewCmd executes the new command.
func runNewCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	seeds, err := collectSeeds(cmd, args)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return fmt.Errorf("no seed URLs given (positional arguments or --seeds-file)")
	}

	depth := cfg.MaxDepth
	if d, err := cmd.Flags().GetInt("depth"); err == nil && d > 0 {
		depth = d
	}

	name, _ := cmd.Flags().GetString("name") //nolint:errcheck // flag is registered
	if name == "" {
		name = seeds[0]
	}

	reg, err := openRegistry(cfg, logger, true)
	if err != nil {
		return err
	}
	defer reg.Close() //nolint:errcheck // read-mostly close

	job, err := reg.CreateJob(cmd.Context(), name, seeds, depth)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created job %d: %s (%d seeds, depth %d)\n",
		job.ID, job.Name, len(job.Seeds), job.MaxDepth)
	return nil
}

// collectSeeds merges positional seeds with a newline-separated seeds
// file. Blank lines and surrounding whitespace are tolerated.
func collectSeeds(cmd *cobra.Command, args []string) ([]string, error) {
	seeds := make([]string, 0, len(args))
	for _, a := range args {
		if s := strings.TrimSpace(a); s != "" {
			seeds = append(seeds, s)
		}
	}

	path, err := cmd.Flags().GetString("seeds-file")
	if err != nil || path == "" {
		return seeds, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read seeds file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			seeds = append(seeds, s)
		}
	}
	return seeds, nil
}
