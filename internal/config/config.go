package config

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These mirror the behavior of the
// original site-mapping tool where applicable.
const (
	// DefaultMaxDepth is the default maximum click depth. Depth 0 is
	// the seed page itself; 3 levels of clicks maps most institutional
	// sites without crawling the whole web.
	DefaultMaxDepth = 3

	// DefaultWorkers is the width of each per-kind worker pool. Pages
	// and documents at one depth each get a pool of this size, so at
	// most 2*DefaultWorkers units run at once.
	DefaultWorkers = 4

	// DefaultPageTimeout bounds a single headless render, including
	// navigation and JavaScript execution.
	DefaultPageTimeout = 30 * time.Second

	// DefaultSettleDelay is how long to wait after the document body
	// exists for client-side rendering to finish.
	DefaultSettleDelay = 3 * time.Second

	// DefaultClickDelay is the pause after each expander click so
	// animated menus have time to reveal their content.
	DefaultClickDelay = 500 * time.Millisecond

	// DefaultDownloadTimeout bounds a single document download.
	DefaultDownloadTimeout = 60 * time.Second

	// DefaultMaxDownloadSize limits downloaded document size.
	// 50MB covers real-world report PDFs while preventing runaway
	// downloads from misconfigured endpoints.
	DefaultMaxDownloadSize = 50 * 1024 * 1024

	// DefaultUserAgent identifies sitemapper in plain HTTP requests
	// (document downloads; rendered fetches use Chrome's own UA).
	DefaultUserAgent = "sitemapper/1.0 (+https://github.com/hharuki/sitemapper)"

	// AppName is the application name used for XDG directory paths.
	AppName = "sitemapper"
)

// Config holds all runtime options for sitemapper.
//
// Design decision: We use a single flat struct instead of nested
// sub-configs. The option count is manageable, and a flat struct keeps
// flag binding in cmd/ trivial.
type Config struct {
	// DataDir is the root directory for the SQLite database and all
	// per-job artifacts. Defaults to the XDG data directory.
	DataDir string

	// MaxDepth is the default maximum click depth for new jobs.
	MaxDepth int

	// Workers is the width of each per-kind worker pool at a depth level.
	Workers int

	// PageTimeout bounds one headless render.
	PageTimeout time.Duration

	// SettleDelay is the post-load wait for client-side rendering.
	SettleDelay time.Duration

	// ClickDelay is the pause after each menu/accordion expander click.
	ClickDelay time.Duration

	// DownloadTimeout bounds one document download.
	DownloadTimeout time.Duration

	// MaxDownloadSize is the maximum document size in bytes to download.
	MaxDownloadSize int64

	// UserAgent is sent with plain HTTP downloads.
	UserAgent string

	// Headless controls whether Chrome runs without a visible window.
	// Disabling it is occasionally useful when debugging renders.
	Headless bool

	// Verbose enables debug-level logging.
	Verbose bool

	// ConfigFilePath is an explicit path to the YAML config file.
	// Empty means search the standard locations.
	ConfigFilePath string

	// Filters are filter patterns loaded from the config file. They are
	// merged into the database's filter rules at job start so that both
	// file-managed and CLI-managed rules apply.
	Filters []string
}

// NewConfig creates a Config with default values.
//
// Design decision: A constructor rather than zero values, because most
// defaults are non-zero and the constructor documents them in one place.
func NewConfig() *Config {
	return &Config{
		DataDir:         XDGDataDir(),
		MaxDepth:        DefaultMaxDepth,
		Workers:         DefaultWorkers,
		PageTimeout:     DefaultPageTimeout,
		SettleDelay:     DefaultSettleDelay,
		ClickDelay:      DefaultClickDelay,
		DownloadTimeout: DefaultDownloadTimeout,
		MaxDownloadSize: DefaultMaxDownloadSize,
		UserAgent:       DefaultUserAgent,
		Headless:        true,
	}
}

// Validate checks the configuration for values that would break the
// crawl outright. It returns the first problem found.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.PageTimeout <= 0 || c.DownloadTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.SettleDelay < 0 || c.ClickDelay < 0 {
		return ErrInvalidDelay
	}
	if c.MaxDownloadSize < 0 {
		return ErrInvalidMaxDownloadSize
	}
	return nil
}

// DatabaseDir returns the directory holding the SQLite database.
func (c *Config) DatabaseDir() string {
	return c.DataDir
}

// JobDir returns the artifact directory for one job: saved markup,
// downloaded documents, and exported site maps.
func (c *Config) JobDir(jobID int64) string {
	return filepath.Join(c.DataDir, "jobs", "job_"+strconv.FormatInt(jobID, 10))
}

// XDGDataDir returns the XDG data directory for sitemapper.
// On Linux: ~/.local/share/sitemapper
// On macOS: ~/Library/Application Support/sitemapper
// On Windows: %LOCALAPPDATA%\sitemapper
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sitemapper.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
