package extractor

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeXLSX builds a small workbook with two sheets and one hyperlink.
func writeXLSX(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // test fixture

	if err := f.SetCellValue("Sheet1", "A1", "Budget"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "B1", "2026"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "A2", "Details"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellHyperLink("Sheet1", "A2", "https://example.com/budget", "External"); err != nil {
		t.Fatal(err)
	}

	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Notes", "A1", "See https://example.com/notes for more."); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "sample.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestExtractXLSX verifies sheet headers, cell text, cell hyperlinks
// and the text scan over cell content.
func TestExtractXLSX(t *testing.T) {
	t.Parallel()

	res := New(nil).Extract(writeXLSX(t))

	for _, want := range []string{"Sheet: Sheet1", "Sheet: Notes", "Budget", "2026", "Details"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("text missing %q:\n%s", want, res.Text)
		}
	}

	got := make(map[string]Origin, len(res.Links))
	for _, l := range res.Links {
		got[l.URL] = l.Origin
	}
	if got["https://example.com/budget"] != OriginAnnotation {
		t.Errorf("cell hyperlink missing or mis-tagged: %+v", res.Links)
	}
	if got["https://example.com/notes"] != OriginTextScan {
		t.Errorf("text-scan link missing or mis-tagged: %+v", res.Links)
	}
}
