// Package task implements the taskmaster task engine: the canonical ordered
// task collection, its mutation operations, and the derived query views.
//
// The Store owns the collection and persists it to a single JSON file after
// every mutation. Derived views (FilterAndSort, the analytics and calendar
// packages) are pure functions over a snapshot and never touch the canonical
// order.
package task

import "time"

// Task represents a single task.
type Task struct {
	// ID is a unique integer identifier, assigned monotonically by the
	// store and never reused within a session.
	ID int `json:"id"`

	// Name is the short display name of the task.
	Name string `json:"name"`

	// Status is the current state of the task.
	Status Status `json:"status"`

	// Details provides optional free-text context.
	Details string `json:"details"`

	// StartDate is an optional YYYY-MM-DD start date.
	StartDate string `json:"startDate"`

	// DueDate is an optional YYYY-MM-DD due date. No ordering against
	// StartDate is enforced.
	DueDate string `json:"dueDate"`

	// EstimatedMinutes is the estimated effort in minutes.
	EstimatedMinutes int `json:"estimatedMinutes"`

	// CompletedAt is when the task was marked done. It is non-nil exactly
	// when Status is StatusDone; the store maintains this on every status
	// transition.
	CompletedAt *time.Time `json:"completedAt"`
}
