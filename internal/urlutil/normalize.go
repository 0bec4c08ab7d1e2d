package urlutil

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL for identity comparisons.
//
// It lower-cases the scheme and host, removes the fragment, and strips a
// single trailing slash from the path unless the path is exactly "/".
// Query string and path case are left untouched.
//
// Design decision: We normalize conservatively because:
//  1. Case in paths and queries is significant on many servers
//  2. The same page reached with and without a trailing slash is almost
//     always the same resource, while deeper rewriting (sorting query
//     parameters, decoding escapes) changes identity in surprising ways
//  3. The function must be idempotent: Normalize(Normalize(u)) == Normalize(u)
//
// Unparsable input is returned unchanged; the caller decides whether to
// keep or drop it.
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}

// Resolve resolves href against the page URL base and normalizes the
// result. It reports false for hrefs that can never become crawlable
// links: empty strings, bare fragments, and script pseudo-protocols.
func Resolve(base, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	h, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	return Normalize(b.ResolveReference(h).String()), true
}
