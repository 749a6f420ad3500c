package lifecycle

import "errors"

var (
	// ErrInvalidDateRange is returned when a calculation is given an end
	// before its start or a negative duration.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrAmbiguousRevision is returned when a latest-drawing check finds no
	// drawings with the requested code, so "latest" is undefined.
	ErrAmbiguousRevision = errors.New("no drawings match the code, latest revision is ambiguous")
)
