package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hharuki/sitemapper/internal/config"
	"github.com/hharuki/sitemapper/internal/log"
	"github.com/hharuki/sitemapper/internal/registry"
)

// NewRootCmd creates the root command for sitemapper.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemapper",
		Short: "Crawl websites into hierarchical site maps",
		Long: `sitemapper crawls a set of seed URLs to a bounded click depth,
discovering pages and linked documents (PDF, Word, Excel), extracting
further links from each, and producing a deduplicated hierarchical JSON
map of the site per seed.

Jobs persist in a local SQLite database, so a crawl can be started,
stepped one depth at a time, stopped from another terminal, inspected,
and deleted across invocations.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .sitemapper in current or home directory)")
	cmd.PersistentFlags().String("data-dir", "",
		"Data directory for the database and job artifacts (default: XDG data dir)")

	// Add subcommands
	cmd.AddCommand(NewNewCmd())
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewStepCmd())
	cmd.AddCommand(NewStopCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewDeleteCmd())
	cmd.AddCommand(NewFilterCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig assembles the configuration: defaults, then the YAML
// config file (if found), then command-line flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		explicit = ""
	}

	if found := config.FindConfigFile(explicit); found != "" {
		file, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("configuration error: %w", err)
		}
		file.Apply(cfg)
		cfg.ConfigFilePath = found
	} else if explicit != "" {
		return nil, fmt.Errorf("configuration error: %w: %s", config.ErrConfigNotFound, explicit)
	}

	if dataDir, err := cmd.Flags().GetString("data-dir"); err == nil && dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil {
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// setupLogger installs the default structured logger.
func setupLogger(cfg *config.Config) *slog.Logger {
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)
	return logger
}

// openRegistry opens the job database under the configured data dir.
func openRegistry(cfg *config.Config, logger *slog.Logger, create bool) (*registry.Registry, error) {
	opts := registry.DefaultOptions()
	opts.CreateIfNotExists = create
	opts.Logger = logger
	return registry.Open(cfg.DatabaseDir(), opts)
}

// parseJobID parses the job-id positional argument.
func parseJobID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid job id %q", arg)
	}
	return id, nil
}
