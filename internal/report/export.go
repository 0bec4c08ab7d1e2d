package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hharuki/sitemapper/internal/registry"
)

// maxSanitizedLen caps the seed-derived part of the export filename.
const maxSanitizedLen = 100

// foldDiacritics decomposes characters and strips combining marks, so
// "Köln" names the same file as "Koln".
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// ExportSiteMap writes the hierarchical site map for one seed into the
// job directory and returns the file path. Re-exporting overwrites in
// place, which is what the stepping crawl relies on.
func ExportSiteMap(jobDir, seedURL string, tree *registry.Tree) (string, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize site map: %w", err)
	}

	if err := os.MkdirAll(jobDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create job directory: %w", err)
	}

	path := filepath.Join(jobDir, "site_map_"+SanitizeSeed(seedURL)+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write site map: %w", err)
	}
	return path, nil
}

// SanitizeSeed folds a seed URL into a filesystem-safe ASCII token:
// scheme dropped, diacritics folded, anything outside [a-zA-Z0-9._-]
// replaced with underscores, length capped.
func SanitizeSeed(seedURL string) string {
	s := seedURL
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}

	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := b.String()
	if len(out) > maxSanitizedLen {
		out = out[:maxSanitizedLen]
	}
	if out == "" {
		out = "seed"
	}
	return out
}
