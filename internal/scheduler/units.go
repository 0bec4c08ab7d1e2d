package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/hharuki/sitemapper/internal/classifier"
	"github.com/hharuki/sitemapper/internal/model"
	"github.com/hharuki/sitemapper/internal/registry"
)

// crawlDepth processes every unprocessed node at one depth level.
// Pages and documents run in two separate bounded pools concurrently;
// the function returns only when both pools drain, which is the hard
// barrier between depth levels.
func (s *Scheduler) crawlDepth(ctx context.Context, job *model.CrawlJob, depth int) error {
	nodes, err := s.reg.UnprocessedAtDepth(ctx, job.ID, depth)
	if err != nil {
		return err
	}

	var pages, documents, rest []*model.LinkNode
	for _, n := range nodes {
		switch {
		case n.Kind == model.KindPage:
			pages = append(pages, n)
		case n.Kind.IsDocument():
			documents = append(documents, n)
		default:
			rest = append(rest, n)
		}
	}

	s.logger.Info("crawling depth",
		"job_id", job.ID,
		"depth", depth,
		"pages", len(pages),
		"documents", len(documents),
	)

	outer, ctx := errgroup.WithContext(ctx)
	outer.Go(func() error { return s.runPool(ctx, job, pages) })
	outer.Go(func() error { return s.runPool(ctx, job, documents) })
	if err := outer.Wait(); err != nil {
		return err
	}

	// Nodes with no unit of work (other, broken) just get closed out.
	for _, n := range rest {
		if err := s.reg.MarkProcessed(ctx, n.ID); err != nil {
			return err
		}
	}
	return nil
}

// runPool drains one node partition through a bounded worker pool.
func (s *Scheduler) runPool(ctx context.Context, job *model.CrawlJob, nodes []*model.LinkNode) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for _, node := range nodes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.runUnit(ctx, job, node)
			return nil
		})
	}
	return g.Wait()
}

// runUnit executes one node's unit of work. This is the unit-failure
// boundary: whatever happens inside, the node ends processed and the
// crawl keeps its forward-progress guarantee. Only context
// cancellation escapes.
func (s *Scheduler) runUnit(ctx context.Context, job *model.CrawlJob, node *model.LinkNode) {
	var err error
	switch {
	case node.Kind == model.KindPage:
		err = s.pageUnit(ctx, job, node)
	case node.Kind.IsDocument():
		err = s.documentUnit(ctx, job, node)
	}
	if err != nil {
		s.logger.Warn("unit of work failed",
			"job_id", job.ID,
			"url", node.URL,
			"kind", node.Kind,
			"error", err,
		)
	}

	if err := s.reg.MarkProcessed(ctx, node.ID); err != nil {
		s.logger.Error("failed to close out node", "url", node.URL, "error", err)
	}
}

// pageUnit renders one page, saves its markup, and records the links
// it contains at the next depth. A failed render rewrites the node to
// broken. Insertion is unconditional: links found while working the
// final depth level are recorded one past the bound, where the depth
// loop never reaches them, so they appear in exports unprocessed.
func (s *Scheduler) pageUnit(ctx context.Context, job *model.CrawlJob, node *model.LinkNode) error {
	page, err := s.pages.Fetch(ctx, node.URL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if kerr := s.reg.SetKind(ctx, node.ID, model.KindBroken); kerr != nil {
			return kerr
		}
		return err
	}

	if path, err := s.savePageArtifact(job, node, page.HTML); err != nil {
		s.logger.Warn("failed to save page markup", "url", node.URL, "error", err)
	} else if err := s.reg.SetArtifact(ctx, node.ID, path); err != nil {
		return err
	}

	// Seeds carry their URL as a placeholder; the rendered title is the
	// better display text. Deeper nodes keep their anchor text.
	if node.Depth == 0 && page.Title != "" {
		if err := s.reg.SetText(ctx, node.ID, page.Title); err != nil {
			return err
		}
	}

	result, err := classifier.Classify(page.HTML, node.URL)
	if err != nil {
		return fmt.Errorf("failed to classify %s: %w", node.URL, err)
	}

	batch := make([]registry.NewLink, 0, len(result.Documents)+len(result.Content))
	for _, l := range result.Documents {
		batch = append(batch, registry.NewLink{URL: l.URL, Text: l.Text, Kind: l.Kind})
	}
	for _, l := range result.Content {
		batch = append(batch, registry.NewLink{URL: l.URL, Text: l.Text, Kind: l.Kind})
	}

	inserted, err := s.reg.AddLinks(ctx, job.ID, batch, node.ID, node.Depth+1, node.RootURL)
	if err != nil {
		return err
	}
	s.logger.Debug("page processed",
		"url", node.URL,
		"links_found", len(batch),
		"links_inserted", inserted,
	)
	return nil
}

// documentUnit downloads one document (unless an artifact already
// exists), extracts its text and links, and records the links at the
// next depth. Extraction failures degrade to zero links inside the
// extractor; the node still ends processed.
func (s *Scheduler) documentUnit(ctx context.Context, job *model.CrawlJob, node *model.LinkNode) error {
	path := node.FilePath
	if path == "" {
		var err error
		path, err = s.docs.Download(ctx, node.URL, node.Kind, s.cfg.JobDir(job.ID))
		if err != nil {
			return err
		}
		if err := s.reg.SetArtifact(ctx, node.ID, path); err != nil {
			return err
		}
	}

	res := s.extract.Extract(path)

	if len(res.Links) == 0 {
		return nil
	}

	batch := make([]registry.NewLink, 0, len(res.Links))
	for _, l := range res.Links {
		text := l.Text
		if text == "" {
			text = l.URL
		}
		batch = append(batch, registry.NewLink{URL: l.URL, Text: text, Kind: model.KindFromURL(l.URL)})
	}

	inserted, err := s.reg.AddLinks(ctx, job.ID, batch, node.ID, node.Depth+1, node.RootURL)
	if err != nil {
		return err
	}
	s.logger.Debug("document processed",
		"url", node.URL,
		"links_found", len(batch),
		"links_inserted", inserted,
	)
	return nil
}

// savePageArtifact writes rendered markup as page_<node id>.html in
// the job directory.
func (s *Scheduler) savePageArtifact(job *model.CrawlJob, node *model.LinkNode, html string) (string, error) {
	dir := s.cfg.JobDir(job.ID)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "page_"+node.ID+".html")
	if err := os.WriteFile(path, []byte(html), 0600); err != nil {
		return "", err
	}
	return path, nil
}
