package extractor

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// literalString matches PDF literal string objects inside content
// streams, with escaped characters allowed. Used only by the fallback
// extractor, which trades fidelity for robustness.
var literalString = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)

// extractPDF extracts text page by page with the primary reader, falls
// back to raw content-stream extraction when the primary result is too
// small to be real text, and collects explicit link annotations.
//
// Design decision: Two extraction engines because:
//  1. The primary reader resolves fonts and produces clean text, but
//     returns next to nothing for scanned or oddly-encoded documents
//  2. The fallback reads the raw content streams, which still recovers
//     literal text (and URLs embedded in it) from documents the primary
//     gives up on
func (e *Extractor) extractPDF(path string) (*Result, error) {
	text, primaryErr := pdfPrimaryText(path)

	if primaryErr != nil || len(strings.TrimSpace(text)) < minPrimaryText {
		if fallback, err := pdfFallbackText(path); err == nil && len(fallback) > len(text) {
			text = fallback
		} else if primaryErr != nil && err != nil {
			return nil, fmt.Errorf("pdf text extraction failed: %w (fallback: %v)", primaryErr, err)
		}
	}

	links, err := pdfAnnotationLinks(path)
	if err != nil {
		// Annotations are an extra; a malformed annotation dictionary
		// must not cost the text we already have.
		e.logger.Warn("pdf annotation scan failed", "path", path, "error", err)
	}

	return &Result{Text: text, Links: links}, nil
}

// pdfPrimaryText extracts text page by page.
func pdfPrimaryText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // read-only file

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// Skip the page; partial text is better than none.
			continue
		}
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// pdfFallbackText pulls literal strings out of the decoded page content
// streams. Crude, but it works on documents the primary reader rejects.
func pdfFallbackText(path string) (string, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for p := 1; p <= ctx.PageCount; p++ {
		r, err := pdfcpu.ExtractPageContent(ctx, p)
		if err != nil || r == nil {
			continue
		}
		raw, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		for _, m := range literalString.FindAllSubmatch(raw, -1) {
			s := unescapePDFString(string(m[1]))
			if strings.TrimSpace(s) == "" {
				continue
			}
			b.WriteString(s)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// pdfAnnotationLinks collects URI link annotations from page metadata.
func pdfAnnotationLinks(path string) ([]Link, error) {
	f, err := os.Open(path) //nolint:gosec // path is our own artifact
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	pages, err := api.Annotations(f, nil, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}

	var links []Link
	seen := make(map[string]bool)
	for _, annots := range pages {
		linkAnnots, ok := annots[pdfmodel.AnnLink]
		if !ok {
			continue
		}
		for _, renderer := range linkAnnots.Map {
			la, ok := renderer.(pdfmodel.LinkAnnotation)
			if !ok || la.URI == "" || seen[la.URI] {
				continue
			}
			seen[la.URI] = true
			links = append(links, Link{URL: la.URI, Origin: OriginAnnotation})
		}
	}
	return links, nil
}

// unescapePDFString resolves the escape sequences meaningful in PDF
// literal strings. Octal escapes are left alone; they are rare in the
// URLs and labels we care about.
func unescapePDFString(s string) string {
	replacer := strings.NewReplacer(
		`\(`, "(",
		`\)`, ")",
		`\\`, `\`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
	)
	return replacer.Replace(s)
}
