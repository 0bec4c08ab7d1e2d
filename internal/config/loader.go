package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sitemapper"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .sitemapper configuration file.
//
// Example:
//
//	max_depth: 3
//	workers: 4
//	data_dir: /srv/sitemapper
//	filters:
//	  - facebook.com
//	  - /login
type File struct {
	// MaxDepth overrides the default maximum click depth when positive.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Workers overrides the per-kind worker pool width when positive.
	Workers int `yaml:"workers,omitempty"`

	// DataDir overrides the data directory when non-empty.
	DataDir string `yaml:"data_dir,omitempty"`

	// PageTimeoutSeconds overrides the render timeout when positive.
	PageTimeoutSeconds int `yaml:"page_timeout_seconds,omitempty"`

	// SettleDelaySeconds overrides the post-load settle delay when positive.
	SettleDelaySeconds int `yaml:"settle_delay_seconds,omitempty"`

	// Headless controls headless Chrome. Defaults to true; set
	// explicitly to false to watch renders while debugging.
	Headless *bool `yaml:"headless,omitempty"`

	// Filters are substring filter patterns merged into the database's
	// filter rules at job start.
	Filters []string `yaml:"filters,omitempty"`
}

// LoadConfigFile loads a YAML configuration file. If the file does not
// exist it returns ErrConfigNotFound; callers decide whether that is
// fatal based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file:
// 1. the explicit path, if given
// 2. .sitemapper in the current directory
// 3. .sitemapper in the user's home directory
//
// Returns the path if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// Apply merges file values into the config. Only values the file
// actually sets are applied, so flag and default values survive.
func (cf *File) Apply(c *Config) {
	if cf.MaxDepth > 0 {
		c.MaxDepth = cf.MaxDepth
	}
	if cf.Workers > 0 {
		c.Workers = cf.Workers
	}
	if cf.DataDir != "" {
		c.DataDir = cf.DataDir
	}
	if cf.PageTimeoutSeconds > 0 {
		c.PageTimeout = time.Duration(cf.PageTimeoutSeconds) * time.Second
	}
	if cf.SettleDelaySeconds > 0 {
		c.SettleDelay = time.Duration(cf.SettleDelaySeconds) * time.Second
	}
	if cf.Headless != nil {
		c.Headless = *cf.Headless
	}
	if len(cf.Filters) > 0 {
		c.Filters = append(c.Filters, cf.Filters...)
	}
}
