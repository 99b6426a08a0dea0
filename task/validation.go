package task

import "errors"

var (
	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidSortKey is returned when an invalid sort key is provided.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrNegativeEstimate is returned when an estimate is negative.
	ErrNegativeEstimate = errors.New("estimated minutes cannot be negative")

	// ErrEmptyName is returned by UI-level validation when a task name
	// trims to empty. The store itself treats an empty name as a silent
	// no-op rather than an error.
	ErrEmptyName = errors.New("task name cannot be empty")
)
