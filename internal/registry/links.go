package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hharuki/sitemapper/internal/model"
	"github.com/hharuki/sitemapper/internal/urlutil"
)

// markRetries bounds MarkProcessed attempts under lock contention.
const markRetries = 3

// markRetryDelay is the pause between MarkProcessed attempts.
const markRetryDelay = 50 * time.Millisecond

// NewLink describes a link to record. URL is normalized on insert.
type NewLink struct {
	// URL is the link target.
	URL string

	// Text is the display text.
	Text string

	// Kind classifies the link.
	Kind model.Kind

	// ParentID is the discovering node's UUID, empty for seeds.
	ParentID string

	// Depth is the click depth (seeds are 0).
	Depth int

	// RootURL is the depth-0 ancestor's canonical URL. Empty lets
	// AddLinks resolve it from the parent (or the URL itself at depth 0).
	RootURL string
}

// AddLink records one discovered link and returns the node's ID and
// whether a new row was inserted.
//
// Semantics by case, all under one transaction:
//   - depth 0: filter rules are bypassed and RootURL is forced to the
//     canonical URL itself. Re-adding an existing seed is idempotent
//     and backfills a missing root.
//   - depth > 0 matching a filter rule: rejected, ("", false, nil).
//   - URL already known with a greater stored depth: depth, parent,
//     and root are rewritten in place (shortest path wins). The
//     existing ID is returned with inserted=false; children recorded
//     under the longer path keep their old depths, and a node that
//     already ran its unit of work is not reopened.
//   - URL already known with depth <= the new one: returned unchanged.
//   - otherwise: a new row is inserted and the job's total_links
//     counter is incremented.
//
// Kinds with no storable representation are rejected with
// ErrKindNotStorable.
func (r *Registry) AddLink(ctx context.Context, jobID int64, link NewLink) (string, bool, error) {
	if !link.Kind.Storable() {
		return "", false, fmt.Errorf("kind %q: %w", link.Kind, ErrKindNotStorable)
	}

	url := urlutil.Normalize(link.URL)
	rootURL := urlutil.Normalize(link.RootURL)

	if link.Depth == 0 {
		rootURL = url
	} else {
		filtered, err := r.ShouldFilter(ctx, url)
		if err != nil {
			return "", false, err
		}
		if filtered {
			return "", false, nil
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to begin link transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var (
		existingID    string
		existingDepth int
		existingRoot  string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, depth, root_url FROM links WHERE job_id = ? AND url = ?`,
		jobID, url,
	).Scan(&existingID, &existingDepth, &existingRoot)

	switch {
	case err == nil:
		if link.Depth == 0 {
			// Idempotent reseed; only repair a missing root.
			if existingRoot == "" {
				if _, err := tx.ExecContext(ctx,
					`UPDATE links SET root_url = ? WHERE id = ?`, url, existingID); err != nil {
					return "", false, fmt.Errorf("failed to backfill root: %w", err)
				}
			}
		} else if link.Depth < existingDepth {
			if _, err := tx.ExecContext(ctx,
				`UPDATE links SET depth = ?, parent_id = ?, root_url = ? WHERE id = ?`,
				link.Depth, link.ParentID, rootURL, existingID); err != nil {
				return "", false, fmt.Errorf("failed to rewrite link path: %w", err)
			}
		}
		if err := tx.Commit(); err != nil {
			return "", false, fmt.Errorf("failed to commit link update: %w", err)
		}
		return existingID, false, nil

	case errors.Is(err, sql.ErrNoRows):
		id := uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO links (id, job_id, url, text, kind, parent_id, depth, root_url)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, jobID, url, link.Text, link.Kind, link.ParentID, link.Depth, rootURL,
		); err != nil {
			return "", false, fmt.Errorf("failed to insert link: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE jobs SET total_links = total_links + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			jobID); err != nil {
			return "", false, fmt.Errorf("failed to bump link counter: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return "", false, fmt.Errorf("failed to commit link insert: %w", err)
		}
		return id, true, nil

	default:
		return "", false, fmt.Errorf("failed to look up link: %w", err)
	}
}

// AddLinks records a batch of links sharing a parent and depth, and
// returns how many new rows were inserted. Links whose kind is not
// storable are skipped. A missing RootURL is resolved from the parent
// node, or at depth 0 from each link's own URL.
func (r *Registry) AddLinks(ctx context.Context, jobID int64, links []NewLink, parentID string, depth int, rootURL string) (int, error) {
	if rootURL == "" && depth > 0 && parentID != "" {
		parent, err := r.Link(ctx, parentID)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve parent root: %w", err)
		}
		rootURL = parent.RootURL
	}

	var inserted int
	for _, l := range links {
		l.ParentID = parentID
		l.Depth = depth
		l.RootURL = rootURL

		_, isNew, err := r.AddLink(ctx, jobID, l)
		if errors.Is(err, ErrKindNotStorable) {
			continue
		}
		if err != nil {
			return inserted, err
		}
		if isNew {
			inserted++
		}
	}
	return inserted, nil
}

// MarkProcessed flips a node to processed and bumps the job's advisory
// counter. Processed is monotonic; a second call is a no-op.
//
// Transient lock contention is retried a bounded number of times.
// Exhausting the retries is logged and swallowed: losing one counter
// bump must not fail the unit of work, and the flag itself is re-read
// from the authoritative row set on the next depth pass.
func (r *Registry) MarkProcessed(ctx context.Context, id string) error {
	var lastErr error
	for attempt := 0; attempt < markRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(markRetryDelay):
			}
		}

		lastErr = r.markProcessedOnce(ctx, id)
		if lastErr == nil || !isBusy(lastErr) {
			break
		}
	}

	if lastErr != nil {
		if errors.Is(lastErr, ErrLinkNotFound) {
			return lastErr
		}
		r.logger.Error("failed to mark link processed",
			"link_id", id,
			"error", lastErr,
		)
	}
	return nil
}

// markProcessedOnce performs one mark attempt in a transaction.
func (r *Registry) markProcessedOnce(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin mark transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var (
		jobID     int64
		processed bool
	)
	err = tx.QueryRowContext(ctx,
		`SELECT job_id, processed FROM links WHERE id = ?`, id,
	).Scan(&jobID, &processed)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("link %s: %w", id, ErrLinkNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up link: %w", err)
	}
	if processed {
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE links SET processed = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark processed: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE jobs SET processed_links = processed_links + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		jobID); err != nil {
		return fmt.Errorf("failed to bump processed counter: %w", err)
	}
	return tx.Commit()
}

// isBusy reports whether the error looks like transient SQLite
// contention rather than a real failure.
func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// Link retrieves a node by ID. Returns ErrLinkNotFound if no row exists.
func (r *Registry) Link(ctx context.Context, id string) (*model.LinkNode, error) {
	node, err := scanLink(r.db.QueryRowContext(ctx, linkColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("link %s: %w", id, ErrLinkNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return node, nil
}

// UnprocessedAtDepth returns the nodes still awaiting their unit of
// work at a depth, in discovery order.
func (r *Registry) UnprocessedAtDepth(ctx context.Context, jobID int64, depth int) ([]*model.LinkNode, error) {
	return r.queryLinks(ctx,
		linkColumns+` WHERE job_id = ? AND depth = ? AND processed = 0 ORDER BY rowid`,
		jobID, depth)
}

// CountAtDepth returns the number of nodes recorded at a depth.
func (r *Registry) CountAtDepth(ctx context.Context, jobID int64, depth int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM links WHERE job_id = ? AND depth = ?`,
		jobID, depth,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count links at depth: %w", err)
	}
	return count, nil
}

// ExistsAtDepth reports whether any node is recorded at a depth.
func (r *Registry) ExistsAtDepth(ctx context.Context, jobID int64, depth int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM links WHERE job_id = ? AND depth = ?)`,
		jobID, depth,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to probe depth: %w", err)
	}
	return exists, nil
}

// SetArtifact records a node's local artifact path.
func (r *Registry) SetArtifact(ctx context.Context, id, path string) error {
	return r.updateLink(ctx, id, `UPDATE links SET file_path = ? WHERE id = ?`, path)
}

// SetKind rewrites a node's kind, typically page to broken.
func (r *Registry) SetKind(ctx context.Context, id string, kind model.Kind) error {
	if !kind.Storable() {
		return fmt.Errorf("kind %q: %w", kind, ErrKindNotStorable)
	}
	return r.updateLink(ctx, id, `UPDATE links SET kind = ? WHERE id = ?`, string(kind))
}

// SetText rewrites a node's display text, typically with a page title.
func (r *Registry) SetText(ctx context.Context, id, text string) error {
	return r.updateLink(ctx, id, `UPDATE links SET text = ? WHERE id = ?`, text)
}

// updateLink runs a single-column node update.
func (r *Registry) updateLink(ctx context.Context, id, query string, value string) error {
	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("failed to update link: %w", err)
	}
	return requireRow(result, fmt.Errorf("link %s: %w", id, ErrLinkNotFound))
}

// LinksByRoot returns every node under one depth-0 root, in discovery
// order. Discovery order keeps export output stable across runs.
func (r *Registry) LinksByRoot(ctx context.Context, jobID int64, rootURL string) ([]*model.LinkNode, error) {
	return r.queryLinks(ctx,
		linkColumns+` WHERE job_id = ? AND root_url = ? ORDER BY rowid`,
		jobID, urlutil.Normalize(rootURL))
}

// RootURLs returns the job's depth-0 canonical URLs in insertion order.
func (r *Registry) RootURLs(ctx context.Context, jobID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT url FROM links WHERE job_id = ? AND depth = 0 ORDER BY rowid`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// linkColumns is the shared select list for link rows.
const linkColumns = `
SELECT id, job_id, url, text, kind, parent_id, depth, root_url, processed, file_path, created_at
FROM links`

// queryLinks runs a multi-row link query.
func (r *Registry) queryLinks(ctx context.Context, query string, args ...any) ([]*model.LinkNode, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var nodes []*model.LinkNode
	for rows.Next() {
		node, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

// scanLink reads one link row.
func scanLink(row rowScanner) (*model.LinkNode, error) {
	var (
		node      model.LinkNode
		kind      string
		createdAt string
	)

	err := row.Scan(
		&node.ID,
		&node.JobID,
		&node.URL,
		&node.Text,
		&kind,
		&node.ParentID,
		&node.Depth,
		&node.RootURL,
		&node.Processed,
		&node.FilePath,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	node.Kind = model.Kind(kind)
	node.CreatedAt = parseTimestamp(createdAt)
	return &node, nil
}
