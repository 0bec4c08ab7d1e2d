package extractor

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
)

// minPrimaryText is the threshold below which a PDF's primary text
// extraction is considered failed (scanned or garbled document) and the
// fallback extractor runs.
const minPrimaryText = 100

// urlPattern matches URLs written out as plain text inside documents.
var urlPattern = regexp.MustCompile(`https?://(?:[-\w.]|%[\da-fA-F]{2})+(?:/[-\w./?%&=]*)?`)

// Origin records how a document link was discovered.
type Origin string

// Link origins.
const (
	// OriginAnnotation marks links carried explicitly by the format.
	OriginAnnotation Origin = "annotation"

	// OriginTextScan marks links found by scanning extracted text.
	OriginTextScan Origin = "text-scan"
)

// Link is one URL discovered inside a document.
type Link struct {
	// URL is the link target as written in the document (not normalized;
	// the registry normalizes on insert).
	URL string

	// Text is the anchor text where the format provides one.
	Text string

	// Origin records the discovery mechanism.
	Origin Origin
}

// Result is the outcome of extracting one document.
type Result struct {
	// Text is the extracted plain text.
	Text string

	// Links are the discovered links, explicit first, scan hits after.
	Links []Link
}

// Extractor extracts text and links from local document files.
type Extractor struct {
	// logger records per-document failures; they are never raised.
	logger *slog.Logger
}

// New creates an Extractor. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract dispatches on the file extension and extracts text and links.
//
// It never returns an error: any parse failure, including panics from
// the underlying format libraries on corrupt input, degrades to an
// empty Result. This is the unit-failure boundary the crawl relies on.
func (e *Extractor) Extract(path string) (result *Result) {
	result = &Result{}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("document extraction panicked",
				"path", path,
				"panic", r,
			)
			result = &Result{}
		}
	}()

	var (
		res *Result
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		res, err = e.extractPDF(path)
	case ".docx", ".doc":
		res, err = e.extractDOCX(path)
	case ".xlsx", ".xls":
		res, err = e.extractXLSX(path)
	default:
		e.logger.Warn("unsupported document type", "path", path)
		return result
	}

	if err != nil {
		e.logger.Error("document extraction failed",
			"path", path,
			"error", err,
		)
		return &Result{}
	}

	res.Links = appendTextScanLinks(res.Links, res.Text)
	return res
}

// appendTextScanLinks scans text for URLs and appends any not already
// present among the explicit links.
func appendTextScanLinks(links []Link, text string) []Link {
	seen := make(map[string]bool, len(links))
	for _, l := range links {
		seen[l.URL] = true
	}

	for _, u := range urlPattern.FindAllString(text, -1) {
		// Trailing punctuation is usually sentence context, not URL.
		u = strings.TrimRight(u, ".,;)")
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		links = append(links, Link{URL: u, Origin: OriginTextScan})
	}
	return links
}
