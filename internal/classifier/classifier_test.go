package classifier

import (
	"testing"

	"github.com/hharuki/sitemapper/internal/model"
)

const testPageURL = "https://example.com/about"

// urls flattens a bucket for easy membership checks.
func urls(links []Link) map[string]bool {
	m := make(map[string]bool, len(links))
	for _, l := range links {
		m[l.URL] = true
	}
	return m
}

// TestClassifyBuckets verifies the three-way split on a realistic page.
func TestClassifyBuckets(t *testing.T) {
	t.Parallel()

	markup := `<html><body>
	<nav><a href="/home">Home</a><a href="/contact">Contact</a></nav>
	<header><a href="/banner">Banner</a></header>
	<div class="sidebar"><a href="/side">Side</a></div>
	<main>
		<p><a href="/services">Our services</a></p>
		<p><a href="reports/annual.pdf">Annual report</a></p>
		<p><a href="/files/budget.xlsx">Budget</a></p>
		<p><a href="minutes.docx">Minutes</a></p>
	</main>
	<div class="news"><a href="/promo">Big promo!</a></div>
	<footer><a href="/imprint">Imprint</a></footer>
	</body></html>`

	result, err := Classify(markup, testPageURL)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	docs := urls(result.Documents)
	for _, want := range []string{
		"https://example.com/reports/annual.pdf",
		"https://example.com/files/budget.xlsx",
		"https://example.com/minutes.docx",
	} {
		if !docs[want] {
			t.Errorf("documents bucket missing %q (got %v)", want, result.Documents)
		}
	}

	nav := urls(result.Navigation)
	for _, want := range []string{
		"https://example.com/home",
		"https://example.com/contact",
		"https://example.com/banner",
		"https://example.com/side",
		"https://example.com/imprint",
	} {
		if !nav[want] {
			t.Errorf("navigation bucket missing %q", want)
		}
	}

	content := urls(result.Content)
	if !content["https://example.com/services"] {
		t.Errorf("content bucket missing services link, got %v", result.Content)
	}

	// Announcement links vanish entirely.
	all := []map[string]bool{docs, nav, content}
	for _, bucket := range all {
		if bucket["https://example.com/promo"] {
			t.Error("announcement link must be dropped from every bucket")
		}
	}
}

// TestClassifyNoiseFiltering verifies email, phone, fragment and
// javascript hrefs never surface.
func TestClassifyNoiseFiltering(t *testing.T) {
	t.Parallel()

	markup := `<html><body><main>
	<a href="mailto:a@b.com">Mail</a>
	<a href="MAILTO:upper@b.com">Mail2</a>
	<a href="info@example.org">Bare address</a>
	<a href="tel:+15551234567">Call us</a>
	<a href="+1 555 123-4567">Bare number</a>
	<a href="#section">Jump</a>
	<a href="javascript:void(0)">Click</a>
	<a href="   ">Blank</a>
	<a href="/real">Real</a>
	</main></body></html>`

	result, err := Classify(markup, testPageURL)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	total := len(result.Documents) + len(result.Content) + len(result.Navigation)
	if total != 1 {
		t.Fatalf("expected exactly one surviving link, got %d: %+v", total, result)
	}
	if result.Content[0].URL != "https://example.com/real" {
		t.Errorf("surviving link = %q, want /real", result.Content[0].URL)
	}
}

// TestClassifyDocumentKinds verifies extension-to-kind mapping,
// including detection of presentations.
func TestClassifyDocumentKinds(t *testing.T) {
	t.Parallel()

	markup := `<html><body><main>
	<a href="/a.pdf">p</a>
	<a href="/b.doc">d</a>
	<a href="/c.xls">x</a>
	<a href="/d.pptx">s</a>
	</main></body></html>`

	result, err := Classify(markup, testPageURL)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	wantKinds := map[string]model.Kind{
		"https://example.com/a.pdf":  model.KindPDF,
		"https://example.com/b.doc":  model.KindDOCX,
		"https://example.com/c.xls":  model.KindXLSX,
		"https://example.com/d.pptx": model.KindPPTX,
	}

	if len(result.Documents) != len(wantKinds) {
		t.Fatalf("got %d document links, want %d", len(result.Documents), len(wantKinds))
	}
	for _, l := range result.Documents {
		if want, ok := wantKinds[l.URL]; !ok || l.Kind != want {
			t.Errorf("link %q kind = %q, want %q", l.URL, l.Kind, want)
		}
	}
}

// TestClassifyAnchorText verifies text trimming and URL fallback.
func TestClassifyAnchorText(t *testing.T) {
	t.Parallel()

	markup := `<html><body><main>
	<a href="/a">  Spaced
	  out  </a>
	<a href="/b"><img src="x.png"></a>
	</main></body></html>`

	result, err := Classify(markup, testPageURL)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(result.Content) != 2 {
		t.Fatalf("got %d content links, want 2", len(result.Content))
	}
	if result.Content[0].Text != "Spaced out" {
		t.Errorf("text = %q, want collapsed whitespace", result.Content[0].Text)
	}
	if result.Content[1].Text != "https://example.com/b" {
		t.Errorf("empty anchor should fall back to URL, got %q", result.Content[1].Text)
	}
}

// TestClassifyRelativeResolution verifies resolution against the page URL.
func TestClassifyRelativeResolution(t *testing.T) {
	t.Parallel()

	markup := `<html><body><main><a href="sub/page/">Rel</a></main></body></html>`

	result, err := Classify(markup, "https://example.com/dir/index.html")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(result.Content) != 1 {
		t.Fatalf("got %d content links, want 1", len(result.Content))
	}
	if got := result.Content[0].URL; got != "https://example.com/dir/sub/page" {
		t.Errorf("resolved URL = %q", got)
	}
}
