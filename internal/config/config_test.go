package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfigDefaults verifies the documented defaults.
func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	if c.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", c.MaxDepth, DefaultMaxDepth)
	}
	if c.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", c.Workers, DefaultWorkers)
	}
	if !c.Headless {
		t.Error("Headless should default to true")
	}
	if c.DataDir == "" {
		t.Error("DataDir should default to the XDG data directory")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestValidate verifies each validation rule.
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "negative max depth",
			mutate:  func(c *Config) { c.MaxDepth = -1 },
			wantErr: ErrInvalidMaxDepth,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Workers = 0 },
			wantErr: ErrInvalidWorkers,
		},
		{
			name:    "zero page timeout",
			mutate:  func(c *Config) { c.PageTimeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative settle delay",
			mutate:  func(c *Config) { c.SettleDelay = -time.Second },
			wantErr: ErrInvalidDelay,
		},
		{
			name:    "negative download size",
			mutate:  func(c *Config) { c.MaxDownloadSize = -1 },
			wantErr: ErrInvalidMaxDownloadSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewConfig()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestJobDir verifies the per-job artifact directory layout.
func TestJobDir(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	c.DataDir = "/data"
	got := c.JobDir(42)
	want := filepath.Join("/data", "jobs", "job_42")
	if got != want {
		t.Errorf("JobDir(42) = %q, want %q", got, want)
	}
}

// TestLoadConfigFile verifies YAML loading and the not-found sentinel.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns sentinel", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("want ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("valid file applies over defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := "max_depth: 5\nworkers: 8\nheadless: false\nfilters:\n  - facebook.com\n  - /login\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile: %v", err)
		}

		c := NewConfig()
		cf.Apply(c)

		if c.MaxDepth != 5 {
			t.Errorf("MaxDepth = %d, want 5", c.MaxDepth)
		}
		if c.Workers != 8 {
			t.Errorf("Workers = %d, want 8", c.Workers)
		}
		if c.Headless {
			t.Error("Headless should be overridden to false")
		}
		if len(c.Filters) != 2 || c.Filters[0] != "facebook.com" {
			t.Errorf("Filters = %v, want [facebook.com /login]", c.Filters)
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(":\tnot yaml"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

// TestApplyLeavesUnsetFields verifies partial files do not clobber defaults.
func TestApplyLeavesUnsetFields(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	(&File{Workers: 2}).Apply(c)

	if c.Workers != 2 {
		t.Errorf("Workers = %d, want 2", c.Workers)
	}
	if c.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth should keep its default, got %d", c.MaxDepth)
	}
	if !c.Headless {
		t.Error("Headless should keep its default when the file omits it")
	}
}
