package task

import (
	"fmt"
	"strings"
)

// Status represents the state of a task.
//
// The values are stored verbatim, including the two-word "in progress" form,
// so storage files stay interchangeable with the web client that originally
// wrote them.
type Status string

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = "todo"

	// StatusInProgress indicates the task is being worked on.
	StatusInProgress Status = "in progress"

	// StatusDone indicates the task is complete.
	StatusDone Status = "done"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// ParseStatus converts user input into a Status. It accepts underscores and
// hyphens in place of the space in "in progress".
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", " ")
	normalized = strings.ReplaceAll(normalized, "-", " ")
	status := Status(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return status, nil
}

// SortKey selects how derived views are ordered.
type SortKey string

const (
	// SortDefault preserves the canonical order.
	SortDefault SortKey = "default"

	// SortDue orders ascending by due date, tasks without one last.
	SortDue SortKey = "due"

	// SortEstimated orders ascending by estimated minutes.
	SortEstimated SortKey = "estimated"

	// SortCompleted orders descending by completion time.
	SortCompleted SortKey = "completed"
)

// ValidSortKeys returns all valid sort key values.
func ValidSortKeys() []SortKey {
	return []SortKey{SortDefault, SortDue, SortEstimated, SortCompleted}
}

// IsValid returns true if the sort key is a known valid value.
func (k SortKey) IsValid() bool {
	for _, valid := range ValidSortKeys() {
		if k == valid {
			return true
		}
	}
	return false
}

// ParseSortKey converts user input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	if key == "" {
		return SortDefault, nil
	}
	if !key.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, value)
	}
	return key, nil
}
