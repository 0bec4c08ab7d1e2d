// Package scheduler orchestrates a crawl job: breadth-first over click
// depth, with bounded worker pools per depth level.
//
// Depth is a hard barrier. All nodes at depth d finish their unit of
// work before any node at d+1 starts, so a node's recorded depth is
// always the length of the shortest discovery path seen so far. Within
// one depth, page renders and document downloads run in two separate
// bounded pools concurrently; pages hold Chrome tabs while documents
// only hold HTTP connections, so neither starves the other.
//
// The depth bound limits processing, not discovery. Units working the
// final depth level still record the links they find, one past the
// bound; those nodes are never crawled and surface in the export as
// unprocessed leaves.
//
// Unit failures (unreachable page, corrupt document) never fail the
// job. The failing node is marked processed, broken pages are recorded
// as such, and the crawl moves on. Only orchestration failures (the
// job row unloadable, the browser gone) abort the job.
//
// A stop request is cooperative: another process flips the job row to
// stopped, and the scheduler re-reads the row before the seed phase
// and before each depth level. Work inside a depth level always runs
// to completion.
package scheduler
