package model

import "time"

// Status is the lifecycle state of a crawl job.
type Status string

// Job statuses. Transitions: pending -> processing -> {completed,
// failed, stopped}. StatusStopped is a cooperative external request;
// the scheduler honors it only at depth checkpoints.
const (
	// StatusPending means the job has been created but not started.
	StatusPending Status = "pending"

	// StatusProcessing means the job is being crawled.
	StatusProcessing Status = "processing"

	// StatusStopped means an external stop request was honored.
	StatusStopped Status = "stopped"

	// StatusCompleted means the crawl ran to termination.
	StatusCompleted Status = "completed"

	// StatusFailed means an unrecoverable job-level error occurred.
	StatusFailed Status = "failed"
)

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusStopped, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the job can make no further progress.
func (s Status) Terminal() bool {
	switch s {
	case StatusStopped, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// String returns the status as a string.
func (s Status) String() string {
	return string(s)
}

// CrawlJob is one site-mapping job: a set of seed URLs crawled to a
// bounded click depth.
//
// TotalLinks and ProcessedLinks are advisory counters updated alongside
// registry mutations from multiple workers. They are eventually
// consistent telemetry for the status surface; the authoritative state
// is the set of LinkNodes, and the scheduler never derives termination
// from these counters.
type CrawlJob struct {
	// ID is the job's database identity.
	ID int64

	// Name is the human-assigned job name.
	Name string

	// Seeds are the depth-0 entry points, in input order.
	Seeds []string

	// MaxDepth is the maximum click depth to crawl (seeds are depth 0).
	MaxDepth int

	// CurrentDepth is the depth level the scheduler is working on.
	CurrentDepth int

	// Status is the job lifecycle state.
	Status Status

	// TotalLinks counts nodes inserted for this job (advisory).
	TotalLinks int

	// ProcessedLinks counts nodes marked processed (advisory).
	ProcessedLinks int

	// CreatedAt is when the job row was created.
	CreatedAt time.Time

	// UpdatedAt is when the job row was last mutated.
	UpdatedAt time.Time
}

// FilterRule excludes URLs from a crawl. Any canonical URL containing
// Pattern as a substring is rejected by the registry, except at depth 0
// (seeds are never filtered).
type FilterRule struct {
	// ID is the rule's database identity.
	ID int64

	// Pattern is the substring to match against canonical URLs.
	Pattern string

	// CreatedAt is when the rule was added.
	CreatedAt time.Time
}
