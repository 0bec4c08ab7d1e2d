package scheduler

import "errors"

var (
	// ErrJobTerminal is returned when a crawl is requested for a job
	// that already completed or failed.
	ErrJobTerminal = errors.New("job already in a terminal state")

	// ErrNoSeeds is returned when a job has no seed URLs to crawl.
	ErrNoSeeds = errors.New("job has no seeds")
)
