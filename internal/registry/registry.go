package registry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Registry provides SQLite-based storage for crawl jobs, link nodes,
// and filter rules. It manages connection pooling and provides methods
// for CRUD operations.
//
// Design decision: one database file for all jobs rather than a file
// per job. Filter rules apply across jobs, the stop command must reach
// a job started by another process, and a single file keeps backup and
// inspection trivial.
type Registry struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// logger records retry exhaustion and other degraded operations.
	logger *slog.Logger
}

// Options configures Registry behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool

	// Logger receives degraded-operation records. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the default registry options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Registry database at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Registry, error) {
	dbPath := filepath.Join(dbDir, "sitemapper.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; funnel everything through a
	// single connection so worker goroutines serialize in the pool
	// instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		db:     db,
		dbPath: dbPath,
		logger: logger,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := r.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return r, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	return r.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (r *Registry) createTables() error {
	schema := `
	-- Jobs store one row per crawl with advisory progress counters
	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		seeds TEXT NOT NULL,
		max_depth INTEGER NOT NULL,
		current_depth INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		total_links INTEGER NOT NULL DEFAULT 0,
		processed_links INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Links store one row per (job, canonical URL)
	CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		job_id INTEGER NOT NULL,
		url TEXT NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT '',
		depth INTEGER NOT NULL,
		root_url TEXT NOT NULL DEFAULT '',
		processed INTEGER NOT NULL DEFAULT 0,
		file_path TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(job_id, url)
	);

	CREATE INDEX IF NOT EXISTS idx_links_job_depth ON links(job_id, depth, processed);
	CREATE INDEX IF NOT EXISTS idx_links_job_root ON links(job_id, root_url);
	CREATE INDEX IF NOT EXISTS idx_links_parent ON links(parent_id);

	-- Filter rules exclude URLs by substring match
	CREATE TABLE IF NOT EXISTS filters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pattern TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := r.db.ExecContext(context.Background(), schema)
	return err
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
