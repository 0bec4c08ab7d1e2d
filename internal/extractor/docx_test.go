package extractor

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeDOCX builds a minimal Word container with the given document
// body and relationships part.
func writeDOCX(t *testing.T, document, rels string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := map[string]string{
		"word/document.xml": document,
	}
	if rels != "" {
		parts["word/_rels/document.xml.rels"] = rels
	}
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "sample.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestExtractDOCXTextAndHyperlinks verifies paragraph text, table cell
// text and hyperlink relationship resolution.
func TestExtractDOCXTextAndHyperlinks(t *testing.T) {
	t.Parallel()

	document := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p>
      <w:hyperlink r:id="rId4">
        <w:r><w:t>Project page</w:t></w:r>
      </w:hyperlink>
    </w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Cell A</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Cell B</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

	rels := `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId4" Target="https://example.com/project" TargetMode="External"/>
  <Relationship Id="rId5" Target="styles.xml"/>
</Relationships>`

	path := writeDOCX(t, document, rels)

	res := New(nil).Extract(path)

	for _, want := range []string{"First paragraph.", "Project page", "Cell A", "Cell B"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("text missing %q:\n%s", want, res.Text)
		}
	}

	var found bool
	for _, l := range res.Links {
		if l.URL == "https://example.com/project" {
			found = true
			if l.Text != "Project page" {
				t.Errorf("hyperlink text = %q, want anchor run text", l.Text)
			}
			if l.Origin != OriginAnnotation {
				t.Errorf("hyperlink origin = %q, want %q", l.Origin, OriginAnnotation)
			}
		}
		if l.URL == "styles.xml" {
			t.Error("internal relationship must not surface as a link")
		}
	}
	if !found {
		t.Errorf("hyperlink not extracted, links: %+v", res.Links)
	}
}

// TestExtractDOCXNoRels verifies a document without a relationships
// part still yields its text.
func TestExtractDOCXNoRels(t *testing.T) {
	t.Parallel()

	document := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p><w:r><w:t>Lonely text.</w:t></w:r></w:p></w:body>
</w:document>`

	res := New(nil).Extract(writeDOCX(t, document, ""))
	if !strings.Contains(res.Text, "Lonely text.") {
		t.Errorf("text = %q, want paragraph content", res.Text)
	}
	if len(res.Links) != 0 {
		t.Errorf("got %d links, want 0", len(res.Links))
	}
}

// TestExtractDOCXTextScanDedup verifies a URL both hyperlinked and
// written in text surfaces once.
func TestExtractDOCXTextScanDedup(t *testing.T) {
	t.Parallel()

	document := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p>
      <w:hyperlink r:id="rId1"><w:r><w:t>Link</w:t></w:r></w:hyperlink>
    </w:p>
    <w:p><w:r><w:t>Also at https://example.com/page in writing.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	rels := `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Target="https://example.com/page" TargetMode="External"/>
</Relationships>`

	res := New(nil).Extract(writeDOCX(t, document, rels))

	var count int
	for _, l := range res.Links {
		if l.URL == "https://example.com/page" {
			count++
			if l.Origin != OriginAnnotation {
				t.Errorf("origin = %q, want explicit link to win over scan", l.Origin)
			}
		}
	}
	if count != 1 {
		t.Errorf("URL surfaced %d times, want 1: %+v", count, res.Links)
	}
}
