// Package log provides crawl-friendly logging built on the standard
// slog package.
//
// Crawling produces attribute values that are enormous by logging
// standards: rendered page markup, extracted document text, and long
// data: URLs. The TrimHandler wraps any slog.Handler and truncates
// oversized string attributes before they reach the underlying handler,
// so a debug-level crawl log stays readable and bounded in size.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("page rendered",
//	    "url", url,
//	    "markup", markup, // truncated to MaxAttrLen with a marker suffix
//	)
package log
