package model

import "time"

// LinkNode is one discovered URL within a job.
//
// Identity is a UUID assigned at creation. The registry guarantees at
// most one LinkNode per (job, canonical URL); rediscovering a URL
// updates the existing node instead of inserting a duplicate.
//
// ParentID is a weak back-link, not an ownership edge: nodes live in
// the registry's flat store and the parent/child tree is reconstructed
// only at export time. Depth invariant: a node recorded with a parent
// always has depth = parent depth + 1. If a shorter path to the URL is
// found later, depth, parent, and root URL are rewritten in place
// (shortest path wins), but a node that was already processed is not
// reopened for reprocessing.
type LinkNode struct {
	// ID is the node's UUID.
	ID string

	// JobID references the owning crawl job.
	JobID int64

	// URL is the canonical (normalized) URL.
	URL string

	// Text is the display text: anchor text, page title, or the URL itself.
	Text string

	// Kind classifies the node (page, pdf, docx, xlsx, other, broken).
	Kind Kind

	// ParentID is the UUID of the node this one was discovered from,
	// or empty for seeds and orphans.
	ParentID string

	// Depth is the click depth from the seed (seeds are 0).
	Depth int

	// RootURL is the canonical URL of the depth-0 ancestor. A depth-0
	// node's RootURL equals its own URL.
	RootURL string

	// Processed reports whether this node's unit of work has run.
	// Monotonic: once true it is never reverted.
	Processed bool

	// FilePath is the local artifact path (saved markup or downloaded
	// document), or empty if none exists.
	FilePath string

	// CreatedAt is when the node was first discovered.
	CreatedAt time.Time
}
