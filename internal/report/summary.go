package report

import (
	"time"

	"github.com/hharuki/sitemapper/internal/model"
)

// Summary is the status surface of one job: lifecycle state, depth
// progress, and per-kind node counts.
//
// The counters come from the job row and are advisory; KindCounts is
// computed from the link rows and is exact at read time.
type Summary struct {
	// JobID is the job's database identity.
	JobID int64 `json:"job_id"`

	// Name is the human-assigned job name.
	Name string `json:"name"`

	// Status is the lifecycle state.
	Status model.Status `json:"status"`

	// Seeds are the depth-0 entry points.
	Seeds []string `json:"seeds"`

	// CurrentDepth is the depth the scheduler last worked on.
	CurrentDepth int `json:"current_depth"`

	// MaxDepth is the configured depth bound.
	MaxDepth int `json:"max_depth"`

	// TotalLinks counts recorded nodes (advisory).
	TotalLinks int `json:"total_links"`

	// ProcessedLinks counts nodes marked processed (advisory).
	ProcessedLinks int `json:"processed_links"`

	// KindCounts maps node kind to count.
	KindCounts map[model.Kind]int `json:"kind_counts"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the job was last mutated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSummary assembles a Summary from a job row and its kind counts.
func NewSummary(job *model.CrawlJob, counts map[model.Kind]int) *Summary {
	if counts == nil {
		counts = make(map[model.Kind]int)
	}
	return &Summary{
		JobID:          job.ID,
		Name:           job.Name,
		Status:         job.Status,
		Seeds:          job.Seeds,
		CurrentDepth:   job.CurrentDepth,
		MaxDepth:       job.MaxDepth,
		TotalLinks:     job.TotalLinks,
		ProcessedLinks: job.ProcessedLinks,
		KindCounts:     counts,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

// kindOrder fixes the display order of kinds across all writers.
var kindOrder = []model.Kind{
	model.KindPage,
	model.KindPDF,
	model.KindDOCX,
	model.KindXLSX,
	model.KindOther,
	model.KindBroken,
}
