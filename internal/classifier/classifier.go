package classifier

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hharuki/sitemapper/internal/model"
	"github.com/hharuki/sitemapper/internal/urlutil"
)

// navigationSelectors match elements that typically contain site
// navigation. The list is fixed; per-site tuning is out of scope.
var navigationSelectors = []string{
	"nav", "header", "footer", ".nav", ".navbar", ".menu", ".navigation",
	".sidebar", "#sidebar", "#nav", "#menu", ".topnav", ".main-nav",
	`[role="navigation"]`, ".quick-links", ".quicklinks",
}

// announcementSelectors match elements that typically contain
// announcements or promotional teasers. Links inside them are dropped.
var announcementSelectors = []string{
	".announcement", ".announcements", ".news", ".alert", ".update",
	".notice", ".post", ".article", ".announcement-banner",
}

var (
	// emailPattern matches a bare email address used as an href.
	emailPattern = regexp.MustCompile(`^(?:mailto:)?[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// phonePattern matches tel-style hrefs: loose on purpose, the
	// original system accepted the same false positives.
	phonePattern = regexp.MustCompile(`^(?:tel:)?(?:\+?\d[\d\s()-]*){5,}$`)
)

// Link is one classified anchor.
type Link struct {
	// URL is the resolved, canonical URL.
	URL string

	// Text is the anchor text, or the URL when the anchor is empty.
	Text string

	// Kind is inferred from the URL's file extension.
	Kind model.Kind
}

// Result holds the three disjoint output buckets.
type Result struct {
	// Documents are links whose extension maps to a document kind.
	Documents []Link

	// Content are in-body links: the ones worth following for mapping.
	Content []Link

	// Navigation are links found inside navigation landmarks. Recorded
	// for the caller's information; the scheduler does not follow them.
	Navigation []Link
}

// Classify parses rendered markup and buckets every anchor.
//
// pageURL is the base for relative-link resolution. A parse failure
// returns an empty result and the error; partial markup that goquery
// can salvage is classified normally, which is the common case on the
// real web.
func Classify(markup, pageURL string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return &Result{}, err
	}

	navSel := strings.Join(navigationSelectors, ", ")
	annSel := strings.Join(announcementSelectors, ", ")

	result := &Result{}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		// Email and phone anchors are noise regardless of region.
		// Tested before resolution: resolving "tel:..." against the
		// page URL would mangle it into a relative path.
		if isEmail(href) || isPhone(href) {
			return
		}

		resolved, ok := urlutil.Resolve(pageURL, href)
		if !ok {
			return
		}
		if isEmail(resolved) || isPhone(resolved) {
			return
		}

		link := Link{
			URL:  resolved,
			Text: anchorText(s, resolved),
			Kind: model.KindFromURL(resolved),
		}

		switch {
		case link.Kind.IsDocument():
			result.Documents = append(result.Documents, link)
		case s.Closest(navSel).Length() > 0:
			result.Navigation = append(result.Navigation, link)
		case s.Closest(annSel).Length() > 0:
			// Announcement links are dropped silently: neither bucket.
		default:
			result.Content = append(result.Content, link)
		}
	})

	return result, nil
}

// anchorText returns trimmed anchor text, falling back to the URL.
func anchorText(s *goquery.Selection, url string) string {
	text := strings.Join(strings.Fields(s.Text()), " ")
	if text == "" {
		return url
	}
	return text
}

// isEmail reports whether the href is a mailto: link or a bare address.
func isEmail(href string) bool {
	if strings.HasPrefix(strings.ToLower(href), "mailto:") {
		return true
	}
	return emailPattern.MatchString(href)
}

// isPhone reports whether the href is a tel: link or a loose phone number.
func isPhone(href string) bool {
	if strings.HasPrefix(strings.ToLower(href), "tel:") {
		return true
	}
	return phonePattern.MatchString(href)
}
