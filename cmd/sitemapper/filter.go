package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewFilterCmd creates the filter command group.
func NewFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Manage URL filter rules",
		Long: `Manage URL filter rules. A rule's pattern is matched as a substring
against every canonical URL discovered during a crawl; matching URLs
are not recorded. Seeds are never filtered.

Rules live in the shared database and apply to all jobs. Patterns can
also be listed in the config file; those are merged in at job start.`,
	}

	cmd.AddCommand(newFilterAddCmd())
	cmd.AddCommand(newFilterListCmd())
	cmd.AddCommand(newFilterRemoveCmd())

	return cmd
}

// newFilterAddCmd creates the filter add subcommand.
func newFilterAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <pattern>",
		Short: "Add a filter rule",
		Example: `  # Never follow links into the login area
  sitemapper filter add /login

  # Skip an entire external host
  sitemapper filter add facebook.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			logger := setupLogger(cfg)

			reg, err := openRegistry(cfg, logger, true)
			if err != nil {
				return err
			}
			defer reg.Close() //nolint:errcheck // process exits after

			id, err := reg.AddFilter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added filter %d: %s\n", id, args[0])
			return nil
		},
	}
}

// newFilterListCmd creates the filter list subcommand.
func newFilterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List filter rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			rules, err := reg.Filters(cmd.Context())
			if err != nil {
				return err
			}
			if len(rules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no filter rules")
				return nil
			}
			for _, rule := range rules {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", rule.ID, rule.Pattern)
			}
			return nil
		},
	}
}

// newFilterRemoveCmd creates the filter remove subcommand.
func newFilterRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <rule-id>",
		Short: "Remove a filter rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule id %q", args[0])
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

			if err := reg.RemoveFilter(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed filter %d\n", id)
			return nil
		},
	}
}
