// Package main provides the entry point for the sitemapper CLI.
//
// sitemapper crawls a set of seed URLs to a bounded click depth and
// produces a hierarchical JSON map of each site, including documents
// (PDF, Word, Excel) and the links found inside them.
//
// Usage:
//
//	sitemapper new --name "city site" https://example.com
//	sitemapper crawl <job-id>
//	sitemapper status <job-id>
//
// See --help for all available options.
package main

// main is the entry point for sitemapper.
func main() {
	Execute()
}
