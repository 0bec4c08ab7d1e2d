package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hharuki/sitemapper/internal/model"
	"github.com/hharuki/sitemapper/internal/urlutil"
)

// AddFilter inserts a filter rule and returns its ID. Re-adding an
// existing pattern returns ErrDuplicateFilter.
func (r *Registry) AddFilter(ctx context.Context, pattern string) (int64, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return 0, fmt.Errorf("filter pattern must not be empty")
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO filters (pattern) VALUES (?)`, pattern)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, fmt.Errorf("pattern %q: %w", pattern, ErrDuplicateFilter)
		}
		return 0, fmt.Errorf("failed to add filter: %w", err)
	}
	return result.LastInsertId()
}

// Filters lists all filter rules in creation order.
func (r *Registry) Filters(ctx context.Context) ([]model.FilterRule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, pattern, created_at FROM filters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list filters: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var rules []model.FilterRule
	for rows.Next() {
		var (
			rule      model.FilterRule
			createdAt string
		)
		if err := rows.Scan(&rule.ID, &rule.Pattern, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan filter: %w", err)
		}
		rule.CreatedAt = parseTimestamp(createdAt)
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// RemoveFilter deletes a filter rule by ID.
func (r *Registry) RemoveFilter(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM filters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove filter: %w", err)
	}
	return requireRow(result, fmt.Errorf("filter %d: %w", id, ErrFilterNotFound))
}

// SeedFilters adds patterns that are not already present, silently
// skipping duplicates. Used to load rules from the config file.
func (r *Registry) SeedFilters(ctx context.Context, patterns []string) error {
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if _, err := r.AddFilter(ctx, p); err != nil && !errors.Is(err, ErrDuplicateFilter) {
			return err
		}
	}
	return nil
}

// ShouldFilter reports whether any rule's pattern occurs in the
// canonical form of the URL. Depth-0 inserts never consult this.
func (r *Registry) ShouldFilter(ctx context.Context, url string) (bool, error) {
	var match bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM filters WHERE instr(?, pattern) > 0)`,
		urlutil.Normalize(url),
	).Scan(&match)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filters: %w", err)
	}
	return match, nil
}
