package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hharuki/sitemapper/internal/config"
	"github.com/hharuki/sitemapper/internal/extractor"
	"github.com/hharuki/sitemapper/internal/fetcher"
	"github.com/hharuki/sitemapper/internal/model"
	"github.com/hharuki/sitemapper/internal/registry"
	"github.com/hharuki/sitemapper/internal/report"
	"github.com/hharuki/sitemapper/internal/urlutil"
)

// PageFetcher renders pages. Satisfied by fetcher.Browser.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Page, error)
}

// DocumentDownloader fetches document files. Satisfied by fetcher.Downloader.
type DocumentDownloader interface {
	Download(ctx context.Context, url string, kind model.Kind, destDir string) (string, error)
}

// DocumentExtractor pulls text and links out of downloaded documents.
// Satisfied by extractor.Extractor.
type DocumentExtractor interface {
	Extract(path string) *extractor.Result
}

// Scheduler drives one crawl job from pending to a terminal state.
type Scheduler struct {
	reg     *registry.Registry
	pages   PageFetcher
	docs    DocumentDownloader
	extract DocumentExtractor
	cfg     *config.Config
	logger  *slog.Logger
}

// New creates a Scheduler. A nil logger falls back to slog.Default().
func New(reg *registry.Registry, pages PageFetcher, docs DocumentDownloader, extract DocumentExtractor, cfg *config.Config, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		reg:     reg,
		pages:   pages,
		docs:    docs,
		extract: extract,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run crawls the job to termination: seeds, then each depth level up
// to the job's bound, then the per-seed exports.
//
// Returns nil when the job ends completed or stopped; returns an error
// only for orchestration failures, which also set the job to failed.
func (s *Scheduler) Run(ctx context.Context, jobID int64) error {
	job, err := s.reg.Job(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status == model.StatusCompleted || job.Status == model.StatusFailed {
		return fmt.Errorf("job %d is %s: %w", jobID, job.Status, ErrJobTerminal)
	}
	if job.Status == model.StatusStopped {
		s.logger.Info("stop request honored", "job_id", jobID)
		return nil
	}
	if len(job.Seeds) == 0 {
		return s.fail(ctx, jobID, ErrNoSeeds)
	}

	if err := s.reg.UpdateJobStatus(ctx, jobID, model.StatusProcessing); err != nil {
		return err
	}

	s.logger.Info("crawl started",
		"job_id", jobID,
		"name", job.Name,
		"seeds", len(job.Seeds),
		"max_depth", job.MaxDepth,
	)

	stopped, err := s.runPhases(ctx, job)
	if err != nil {
		return s.fail(ctx, jobID, err)
	}

	if err := s.export(ctx, job); err != nil {
		return s.fail(ctx, jobID, err)
	}

	final := model.StatusCompleted
	if stopped {
		final = model.StatusStopped
	}
	if err := s.reg.UpdateJobStatus(ctx, jobID, final); err != nil {
		return err
	}

	s.logger.Info("crawl finished", "job_id", jobID, "status", final)
	return nil
}

// runPhases runs the seed phase and the depth loop. It reports whether
// an external stop request ended the crawl early.
func (s *Scheduler) runPhases(ctx context.Context, job *model.CrawlJob) (bool, error) {
	if stopped, err := s.stopRequested(ctx, job.ID); err != nil || stopped {
		return stopped, err
	}

	if err := s.seedPhase(ctx, job); err != nil {
		return false, err
	}

	for depth := 1; depth <= job.MaxDepth; depth++ {
		if stopped, err := s.stopRequested(ctx, job.ID); err != nil || stopped {
			return stopped, err
		}

		count, err := s.reg.CountAtDepth(ctx, job.ID, depth)
		if err != nil {
			return false, err
		}
		if count == 0 {
			// Starvation check: nothing here and nothing deeper means
			// the frontier is exhausted.
			deeper, err := s.reg.ExistsAtDepth(ctx, job.ID, depth+1)
			if err != nil {
				return false, err
			}
			if !deeper {
				s.logger.Info("frontier exhausted", "job_id", job.ID, "depth", depth)
				return false, nil
			}
			continue
		}

		if err := s.reg.SetCurrentDepth(ctx, job.ID, depth); err != nil {
			return false, err
		}
		if err := s.crawlDepth(ctx, job, depth); err != nil {
			return false, err
		}
	}

	return false, nil
}

// StepDepth advances the job exactly one phase per invocation: the
// seed phase first, then one depth level per call, re-exporting the
// partial site maps after each step. The job ends completed when the
// depth bound is reached or the frontier is exhausted; otherwise it is
// parked pending for the next step. A stop request raised between
// steps is honored: the job stays stopped and no work runs.
func (s *Scheduler) StepDepth(ctx context.Context, jobID int64) error {
	job, err := s.reg.Job(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status == model.StatusStopped {
		s.logger.Info("stop request honored", "job_id", jobID)
		return nil
	}
	if job.Status.Terminal() {
		return fmt.Errorf("job %d is %s: %w", jobID, job.Status, ErrJobTerminal)
	}
	if len(job.Seeds) == 0 {
		return s.fail(ctx, jobID, ErrNoSeeds)
	}

	if err := s.reg.UpdateJobStatus(ctx, jobID, model.StatusProcessing); err != nil {
		return err
	}

	done, err := s.step(ctx, job)
	if err != nil {
		return s.fail(ctx, jobID, err)
	}
	if err := s.export(ctx, job); err != nil {
		return s.fail(ctx, jobID, err)
	}

	// A stop flipped while the step was working holds; the final status
	// write must not erase it.
	stopped, err := s.stopRequested(ctx, jobID)
	if err != nil {
		return err
	}
	if stopped {
		return nil
	}

	next := model.StatusPending
	if done {
		next = model.StatusCompleted
	}
	return s.reg.UpdateJobStatus(ctx, jobID, next)
}

// step runs one phase and reports whether the job is finished.
func (s *Scheduler) step(ctx context.Context, job *model.CrawlJob) (bool, error) {
	seeded, err := s.reg.ExistsAtDepth(ctx, job.ID, 0)
	if err != nil {
		return false, err
	}
	if !seeded {
		if err := s.seedPhase(ctx, job); err != nil {
			return false, err
		}
		return job.MaxDepth == 0, nil
	}

	depth := job.CurrentDepth + 1
	if depth > job.MaxDepth {
		return true, nil
	}

	count, err := s.reg.CountAtDepth(ctx, job.ID, depth)
	if err != nil {
		return false, err
	}
	if count == 0 {
		deeper, err := s.reg.ExistsAtDepth(ctx, job.ID, depth+1)
		if err != nil {
			return false, err
		}
		if !deeper {
			return true, nil
		}
		// Skip the empty level; the next step works on depth+1.
		return depth >= job.MaxDepth, s.reg.SetCurrentDepth(ctx, job.ID, depth)
	}

	if err := s.reg.SetCurrentDepth(ctx, job.ID, depth); err != nil {
		return false, err
	}
	if err := s.crawlDepth(ctx, job, depth); err != nil {
		return false, err
	}
	return depth >= job.MaxDepth, nil
}

// seedPhase records and processes the depth-0 nodes sequentially.
// Seeds bypass filter rules and root themselves.
func (s *Scheduler) seedPhase(ctx context.Context, job *model.CrawlJob) error {
	for _, seed := range job.Seeds {
		url := urlutil.Normalize(seed)
		kind := model.KindFromURL(url)
		if !kind.Storable() {
			kind = model.KindOther
		}

		id, _, err := s.reg.AddLink(ctx, job.ID, registry.NewLink{
			URL:   url,
			Text:  url,
			Kind:  kind,
			Depth: 0,
		})
		if err != nil {
			return fmt.Errorf("failed to record seed %s: %w", url, err)
		}

		node, err := s.reg.Link(ctx, id)
		if err != nil {
			return err
		}
		if node.Processed {
			continue
		}
		s.runUnit(ctx, job, node)
	}
	return nil
}

// stopRequested re-reads the job row so a stop flipped by another
// process is observed.
func (s *Scheduler) stopRequested(ctx context.Context, jobID int64) (bool, error) {
	job, err := s.reg.Job(ctx, jobID)
	if err != nil {
		return false, err
	}
	if job.Status == model.StatusStopped {
		s.logger.Info("stop request honored", "job_id", jobID)
		return true, nil
	}
	return false, nil
}

// export writes the per-seed site maps for every depth-0 root.
func (s *Scheduler) export(ctx context.Context, job *model.CrawlJob) error {
	roots, err := s.reg.RootURLs(ctx, job.ID)
	if err != nil {
		return err
	}

	jobDir := s.cfg.JobDir(job.ID)
	for _, root := range roots {
		nodes, err := s.reg.LinksByRoot(ctx, job.ID, root)
		if err != nil {
			return err
		}
		path, err := report.ExportSiteMap(jobDir, root, registry.BuildHierarchy(nodes))
		if err != nil {
			return err
		}
		s.logger.Info("site map exported", "job_id", job.ID, "root", root, "path", path)
	}
	return nil
}

// fail records a job-level failure and returns the original error.
func (s *Scheduler) fail(ctx context.Context, jobID int64, cause error) error {
	if err := s.reg.UpdateJobStatus(ctx, jobID, model.StatusFailed); err != nil {
		s.logger.Error("failed to record job failure", "job_id", jobID, "error", err)
	}
	return cause
}
