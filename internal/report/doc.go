// Package report produces the crawl's output artifacts: the per-seed
// hierarchical site map JSON and the job status surface in plain text,
// Markdown, and JSON.
//
// Site map files are named after their seed URL, folded down to a
// filesystem-safe ASCII form, so a job directory stays readable and
// one file per seed survives re-exports in place.
package report
