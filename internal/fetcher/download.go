package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hharuki/sitemapper/internal/config"
	"github.com/hharuki/sitemapper/internal/model"
)

// contentTypeFamilies maps each document kind to the media types a
// server may legitimately declare for it. application/octet-stream is
// tolerated everywhere; servers routinely serve documents with it.
var contentTypeFamilies = map[model.Kind][]string{
	model.KindPDF: {
		"application/pdf",
	},
	model.KindDOCX: {
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword",
	},
	model.KindXLSX: {
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
	},
}

// extensionByContentType supplies a filename extension when the URL
// path carries none.
var extensionByContentType = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
}

// Downloader fetches document files over plain HTTP. Documents do not
// need a rendering engine; a plain client is faster and keeps Chrome's
// download pipeline out of the picture.
type Downloader struct {
	client    *http.Client
	userAgent string
	maxSize   int64
}

// NewDownloader creates a Downloader from the configuration.
func NewDownloader(cfg *config.Config) *Downloader {
	return &Downloader{
		client:    &http.Client{Timeout: cfg.DownloadTimeout},
		userAgent: cfg.UserAgent,
		maxSize:   cfg.MaxDownloadSize,
	}
}

// Download fetches rawURL into destDir and returns the saved path.
//
// Redirects are followed. The response's Content-Type must belong to
// the family the kind expects (octet-stream tolerated). The filename
// comes from the URL path when it carries an extension, prefixed with
// a token derived from the URL so same-named files from different
// paths never share a destination; otherwise a generated token plus an
// extension inferred from the Content-Type.
func (d *Downloader) Download(ctx context.Context, rawURL string, kind model.Kind, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode, rawURL)
	}

	mediaType := responseMediaType(resp)
	if err := validateContentType(kind, mediaType); err != nil {
		return "", err
	}

	filename := deriveFilename(rawURL, mediaType)
	if err := os.MkdirAll(destDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}
	dest := filepath.Join(destDir, filename)

	f, err := os.Create(dest) //nolint:gosec // dest is inside our job directory
	if err != nil {
		return "", fmt.Errorf("failed to create download file: %w", err)
	}

	// Read one byte past the limit so an oversized body is detected
	// instead of silently truncated.
	written, err := io.Copy(f, io.LimitReader(resp.Body, d.maxSize+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("failed to save download: %w", err)
	}
	if written > d.maxSize {
		_ = os.Remove(dest)
		return "", fmt.Errorf("%w: %s", ErrDownloadTooLarge, rawURL)
	}

	return dest, nil
}

// responseMediaType extracts the bare media type, dropping parameters.
func responseMediaType(resp *http.Response) string {
	ct := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mediaType
}

// validateContentType checks the declared media type against the
// family the kind expects.
func validateContentType(kind model.Kind, mediaType string) error {
	if mediaType == "" || mediaType == "application/octet-stream" {
		return nil
	}
	family, ok := contentTypeFamilies[kind]
	if !ok {
		// Kinds without a registered family (other) accept anything.
		return nil
	}
	for _, accepted := range family {
		if mediaType == accepted {
			return nil
		}
	}
	return fmt.Errorf("%w: got %q for kind %q", ErrContentTypeMismatch, mediaType, kind)
}

// deriveFilename picks a local filename for the download. Path-derived
// names carry a URL token so /a/report.pdf and /b/report.pdf land in
// separate files; the token is stable, so re-downloading a URL reuses
// its path.
func deriveFilename(rawURL, mediaType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		base := path.Base(u.Path)
		if base != "." && base != "/" && path.Ext(base) != "" {
			return urlToken(rawURL) + "_" + base
		}
	}
	ext := extensionByContentType[mediaType]
	if ext == "" {
		ext = ".bin"
	}
	return "download_" + uuid.NewString() + ext
}

// urlToken returns a short stable token derived from the URL.
func urlToken(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:4])
}
