package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hharuki/sitemapper/internal/config"
	"github.com/hharuki/sitemapper/internal/extractor"
	"github.com/hharuki/sitemapper/internal/fetcher"
	"github.com/hharuki/sitemapper/internal/scheduler"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <job-id>",
		Short: "Run a crawl job to completion",
		Long: `Run a crawl job: process the seeds, then each depth level up to the
job's bound, and export one site map JSON per seed into the job
directory.

The job can be stopped from another terminal with
'sitemapper stop <job-id>'; the stop takes effect at the next depth
boundary.

Examples:
  # Run job 3
  sitemapper crawl 3

  # Run with a visible browser window for debugging
  sitemapper crawl --no-headless 3`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().IntP("workers", "w", 0, "Worker pool width per partition (default from config)")
	cmd.Flags().Bool("no-headless", false, "Run Chrome with a visible window")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
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
		return s.Run(ctx, jobID)
	})
}

// applyCrawlFlags merges crawl-specific flags into the config.
func applyCrawlFlags(cmd *cobra.Command, cfg *config.Config) {
	if w, err := cmd.Flags().GetInt("workers"); err == nil && w > 0 {
		cfg.Workers = w
	}
	if noHeadless, err := cmd.Flags().GetBool("no-headless"); err == nil && noHeadless {
		cfg.Headless = false
	}
}

// signalContext returns a context cancelled by SIGINT/SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// runJob wires the full crawl stack (registry, browser, downloader,
// extractor) and hands the scheduler to run.
func runJob(ctx context.Context, cfg *config.Config, logger *slog.Logger, jobID int64, run func(*scheduler.Scheduler) error) error {
	reg, err := openRegistry(cfg, logger, true)
	if err != nil {
		return err
	}
	defer reg.Close() //nolint:errcheck // process exits after

	// Config-file filter patterns join the database's rules before the
	// crawl consults them.
	if len(cfg.Filters) > 0 {
		if err := reg.SeedFilters(ctx, cfg.Filters); err != nil {
			return err
		}
	}

	browser, err := fetcher.NewBrowser(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer browser.Close()

	s := scheduler.New(
		reg,
		browser,
		fetcher.NewDownloader(cfg),
		extractor.New(logger),
		cfg,
		logger,
	)
	return run(s)
}

// ensure the concrete types keep satisfying the scheduler's interfaces.
var (
	_ scheduler.PageFetcher        = (*fetcher.Browser)(nil)
	_ scheduler.DocumentDownloader = (*fetcher.Downloader)(nil)
	_ scheduler.DocumentExtractor  = (*extractor.Extractor)(nil)
)
