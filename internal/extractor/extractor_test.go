package extractor

import (
	"os"
	"path/filepath"
	"testing"
)

// TestExtractUnsupportedType verifies unknown extensions degrade to an
// empty result instead of failing.
func TestExtractUnsupportedType(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "archive.tar.gz")
	if err := os.WriteFile(path, []byte("not a document"), 0o600); err != nil {
		t.Fatal(err)
	}

	res := New(nil).Extract(path)
	if res == nil {
		t.Fatal("Extract returned nil")
	}
	if res.Text != "" || len(res.Links) != 0 {
		t.Errorf("unsupported type should yield empty result, got %+v", res)
	}
}

// TestExtractMissingFile verifies a missing path degrades to an empty
// result.
func TestExtractMissingFile(t *testing.T) {
	t.Parallel()

	res := New(nil).Extract(filepath.Join(t.TempDir(), "gone.pdf"))
	if res.Text != "" || len(res.Links) != 0 {
		t.Errorf("missing file should yield empty result, got %+v", res)
	}
}

// TestExtractCorruptDocument verifies garbage bytes with a document
// extension degrade to an empty result.
func TestExtractCorruptDocument(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".pdf", ".docx", ".xlsx"} {
		path := filepath.Join(t.TempDir(), "broken"+ext)
		if err := os.WriteFile(path, []byte("garbage bytes"), 0o600); err != nil {
			t.Fatal(err)
		}
		res := New(nil).Extract(path)
		if res.Text != "" || len(res.Links) != 0 {
			t.Errorf("%s: corrupt file should yield empty result, got %+v", ext, res)
		}
	}
}

// TestAppendTextScanLinks verifies URL scanning, deduplication against
// explicit links and trailing punctuation trimming.
func TestAppendTextScanLinks(t *testing.T) {
	t.Parallel()

	explicit := []Link{
		{URL: "https://example.com/known", Origin: OriginAnnotation},
	}
	text := `See https://example.com/known and also
https://example.com/new-page. Details at https://example.com/faq?id=3,
plain text, and again https://example.com/new-page for good measure.`

	links := appendTextScanLinks(explicit, text)

	if len(links) != 3 {
		t.Fatalf("got %d links, want 3: %+v", len(links), links)
	}
	want := map[string]Origin{
		"https://example.com/known":    OriginAnnotation,
		"https://example.com/new-page": OriginTextScan,
		"https://example.com/faq?id=3": OriginTextScan,
	}
	for _, l := range links {
		origin, ok := want[l.URL]
		if !ok {
			t.Errorf("unexpected link %q", l.URL)
			continue
		}
		if l.Origin != origin {
			t.Errorf("link %q origin = %q, want %q", l.URL, l.Origin, origin)
		}
	}
}

// TestURLPatternBoundaries verifies the scan pattern against text that
// mixes URLs with sentence punctuation.
func TestURLPatternBoundaries(t *testing.T) {
	t.Parallel()

	links := appendTextScanLinks(nil, "(see https://a.example/path).")
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].URL != "https://a.example/path" {
		t.Errorf("URL = %q, want trailing punctuation trimmed", links[0].URL)
	}
}
