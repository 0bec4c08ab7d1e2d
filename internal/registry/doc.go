// Package registry provides SQLite-backed storage for crawl jobs,
// discovered links, and filter rules.
//
// The registry is the single source of truth for a crawl: the scheduler
// derives all progress and termination decisions from the link rows, and
// multiple worker goroutines (and the stop command in another process)
// mutate state through it concurrently. Link identity is one row per
// (job, canonical URL); rediscovery updates the existing row, and a
// shorter discovery path rewrites depth, parent, and root in place.
package registry
