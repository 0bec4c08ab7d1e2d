package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hharuki/sitemapper/internal/model"
)

// CreateJob inserts a new pending job and returns it with its assigned ID.
func (r *Registry) CreateJob(ctx context.Context, name string, seeds []string, maxDepth int) (*model.CrawlJob, error) {
	seedsJSON, err := json.Marshal(seeds)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize seeds: %w", err)
	}

	query := `
	INSERT INTO jobs (name, seeds, max_depth, status)
	VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, name, string(seedsJSON), maxDepth, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read job id: %w", err)
	}

	return r.Job(ctx, id)
}

// Job retrieves a job by ID. Returns ErrJobNotFound if no row exists.
func (r *Registry) Job(ctx context.Context, id int64) (*model.CrawlJob, error) {
	query := `
	SELECT id, name, seeds, max_depth, current_depth, status, total_links, processed_links, created_at, updated_at
	FROM jobs
	WHERE id = ?
	`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %d: %w", id, ErrJobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// Jobs lists all jobs, newest first.
func (r *Registry) Jobs(ctx context.Context) ([]*model.CrawlJob, error) {
	query := `
	SELECT id, name, seeds, max_depth, current_depth, status, total_links, processed_links, created_at, updated_at
	FROM jobs
	ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var jobs []*model.CrawlJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// UpdateJobStatus sets the job's lifecycle state.
func (r *Registry) UpdateJobStatus(ctx context.Context, id int64, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid job status %q", status)
	}

	query := `
	UPDATE jobs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	return requireRow(result, ErrJobNotFound)
}

// SetCurrentDepth records the depth level the scheduler is working on.
func (r *Registry) SetCurrentDepth(ctx context.Context, id int64, depth int) error {
	query := `
	UPDATE jobs SET current_depth = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, depth, id)
	if err != nil {
		return fmt.Errorf("failed to set current depth: %w", err)
	}
	return requireRow(result, ErrJobNotFound)
}

// DeleteJob removes a job and all of its link rows.
func (r *Registry) DeleteJob(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE job_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete job links: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if err := requireRow(result, ErrJobNotFound); err != nil {
		return err
	}

	return tx.Commit()
}

// KindCounts returns the number of link nodes per kind for a job.
func (r *Registry) KindCounts(ctx context.Context, jobID int64) (map[model.Kind]int, error) {
	query := `
	SELECT kind, COUNT(*) FROM links WHERE job_id = ? GROUP BY kind
	`

	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to count kinds: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	counts := make(map[model.Kind]int)
	for rows.Next() {
		var (
			kind  string
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan kind count: %w", err)
		}
		counts[model.Kind(kind)] = count
	}
	return counts, rows.Err()
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanJob reads one job row.
func scanJob(row rowScanner) (*model.CrawlJob, error) {
	var (
		job       model.CrawlJob
		seedsJSON string
		status    string
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&job.ID,
		&job.Name,
		&seedsJSON,
		&job.MaxDepth,
		&job.CurrentDepth,
		&status,
		&job.TotalLinks,
		&job.ProcessedLinks,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(seedsJSON), &job.Seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seeds: %w", err)
	}
	job.Status = model.Status(status)
	job.CreatedAt = parseTimestamp(createdAt)
	job.UpdatedAt = parseTimestamp(updatedAt)

	return &job, nil
}

// requireRow converts a zero-row update into notFound.
func requireRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
