package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hharuki/sitemapper/internal/registry"
)

func TestSanitizeSeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"scheme dropped", "https://example.com/about", "example.com_about"},
		{"http scheme dropped", "http://example.com", "example.com"},
		{"diacritics folded", "https://münchen.de/straße", "munchen.de_stra_e"},
		{"query replaced", "https://example.com/p?id=1&x=2", "example.com_p_id_1_x_2"},
		{"empty falls back", "", "seed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeSeed(tt.in); got != tt.want {
				t.Errorf("SanitizeSeed(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	long := "https://example.com/" + strings.Repeat("x", 300)
	if got := SanitizeSeed(long); len(got) != 100 {
		t.Errorf("long seed sanitized to %d chars, want capped at 100", len(got))
	}
}

func TestExportSiteMap(t *testing.T) {
	t.Parallel()

	tree := &registry.Tree{
		Roots: []*registry.Node{
			{
				URL: "https://example.com", Text: "Home", Type: "page",
				Processed: true,
				Children: []*registry.Node{
					{URL: "https://example.com/a.pdf", Text: "Report", Type: "pdf", Depth: 1, Children: []*registry.Node{}},
				},
			},
		},
	}

	dir := t.TempDir()
	path, err := ExportSiteMap(dir, "https://example.com", tree)
	if err != nil {
		t.Fatalf("ExportSiteMap: %v", err)
	}
	if filepath.Base(path) != "site_map_example.com.json" {
		t.Errorf("filename = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path) //nolint:gosec // test artifact
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Roots []struct {
			URL       string `json:"url"`
			Processed bool   `json:"processed"`
			Children  []struct {
				URL   string `json:"url"`
				Type  string `json:"type"`
				Depth int    `json:"depth"`
			} `json:"children"`
		} `json:"roots"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(decoded.Roots) != 1 || decoded.Roots[0].URL != "https://example.com" {
		t.Fatalf("roots = %+v", decoded.Roots)
	}
	child := decoded.Roots[0].Children[0]
	if child.Type != "pdf" || child.Depth != 1 {
		t.Errorf("child = %+v", child)
	}

	// Re-export overwrites in place.
	if _, err := ExportSiteMap(dir, "https://example.com", tree); err != nil {
		t.Fatalf("re-export: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("re-export created %d files, want overwrite", len(entries))
	}
}
