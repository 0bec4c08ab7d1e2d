package registry

import "errors"

var (
	// ErrJobNotFound is returned when no job row has the requested ID.
	ErrJobNotFound = errors.New("job not found")

	// ErrLinkNotFound is returned when no link row has the requested ID.
	ErrLinkNotFound = errors.New("link not found")

	// ErrFilterNotFound is returned when no filter rule has the requested ID.
	ErrFilterNotFound = errors.New("filter rule not found")

	// ErrKindNotStorable is returned when a link's kind has no place in
	// the store (presentations are detected but not persisted).
	ErrKindNotStorable = errors.New("link kind not storable")

	// ErrDuplicateFilter is returned when a filter pattern already exists.
	ErrDuplicateFilter = errors.New("filter pattern already exists")
)
