package config

import "errors"

// Configuration validation errors returned by Config.Validate().
//
// Design decision: Package-level sentinel errors rather than ad-hoc
// errors.New calls inside Validate(), so callers can use errors.Is for
// programmatic handling while the messages stay human-readable.
var (
	// ErrInvalidMaxDepth is returned when the maximum depth is negative.
	// Depth 0 (seeds only) is valid; negative depth is meaningless.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidWorkers is returned when the worker pool width is not
	// positive. A zero-width pool would stall every depth level.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelay is returned when a settle or click delay is
	// negative. Use 0 to disable a delay.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidMaxDownloadSize is returned when the download size
	// limit is negative. Use 0 for the default limit.
	ErrInvalidMaxDownloadSize = errors.New("invalid max download size: must be non-negative")

	// ErrNoSeeds is returned when a job is created without any seed URLs.
	ErrNoSeeds = errors.New("no seed URLs: provide at least one URL")
)
