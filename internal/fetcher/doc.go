// Package fetcher renders pages in headless Chrome and downloads
// linked documents over plain HTTP.
//
// A Browser owns one Chrome process and a fixed pool of tab sessions.
// Workers borrow a session for the duration of one fetch, so concurrent
// fetches never share a tab and the pool size caps Chrome's memory use.
//
// Rendering waits for the document body and then a settle delay so
// client-side frameworks finish painting, and makes one best-effort
// pass clicking collapsed menu and accordion controls so links hidden
// behind them land in the markup. Every render failure collapses into
// ErrPageUnreachable; the caller records the page as broken and the
// crawl moves on.
package fetcher
