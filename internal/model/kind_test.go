package model

import "testing"

// TestKindFromURL verifies extension-based kind inference.
func TestKindFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want Kind
	}{
		{name: "pdf", url: "https://example.com/report.pdf", want: KindPDF},
		{name: "pdf with query", url: "https://example.com/report.pdf?v=2", want: KindPDF},
		{name: "upper-case extension", url: "https://example.com/REPORT.PDF", want: KindPDF},
		{name: "docx", url: "https://example.com/a.docx", want: KindDOCX},
		{name: "legacy doc", url: "https://example.com/a.doc", want: KindDOCX},
		{name: "xlsx", url: "https://example.com/b.xlsx", want: KindXLSX},
		{name: "legacy xls", url: "https://example.com/b.xls", want: KindXLSX},
		{name: "pptx detected", url: "https://example.com/deck.pptx", want: KindPPTX},
		{name: "plain page", url: "https://example.com/about", want: KindPage},
		{name: "html page", url: "https://example.com/index.html", want: KindPage},
		{name: "dot in host only", url: "https://example.com/path", want: KindPage},
		{name: "trailing dot", url: "https://example.com/odd.", want: KindPage},
		{name: "empty", url: "", want: KindPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := KindFromURL(tt.url); got != tt.want {
				t.Errorf("KindFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// TestKindPredicates verifies document/storable classification.
func TestKindPredicates(t *testing.T) {
	t.Parallel()

	if !KindPDF.IsDocument() || !KindDOCX.IsDocument() || !KindXLSX.IsDocument() || !KindPPTX.IsDocument() {
		t.Error("document kinds should report IsDocument")
	}
	if KindPage.IsDocument() || KindBroken.IsDocument() || KindOther.IsDocument() {
		t.Error("non-document kinds should not report IsDocument")
	}

	// pptx is detected but never stored.
	if KindPPTX.Storable() {
		t.Error("pptx must not be storable")
	}
	for _, k := range []Kind{KindPage, KindPDF, KindDOCX, KindXLSX, KindOther, KindBroken} {
		if !k.Storable() {
			t.Errorf("kind %q should be storable", k)
		}
	}
	if Kind("bogus").Storable() {
		t.Error("unknown kind must not be storable")
	}
}

// TestStatus verifies status validity and terminality.
func TestStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []Status{StatusPending, StatusProcessing, StatusStopped, StatusCompleted, StatusFailed} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if Status("running").Valid() {
		t.Error("unknown status must not be valid")
	}

	for _, s := range []Status{StatusStopped, StatusCompleted, StatusFailed} {
		if !s.Terminal() {
			t.Errorf("status %q should be terminal", s)
		}
	}
	if StatusPending.Terminal() || StatusProcessing.Terminal() {
		t.Error("pending and processing are not terminal")
	}
}
