package task

import (
	"strings"
	"sync"
	"time"
)

// Store owns the canonical ordered task collection.
//
// Every successful mutation rewrites the whole collection to the storage
// file. Write failures are swallowed: the in-memory collection remains
// authoritative for the session and the next mutation rewrites the full
// snapshot anyway.
type Store struct {
	mu      sync.Mutex
	path    string
	tasks   []Task
	nextID  int
	version uint64

	// now is replaceable in tests.
	now func() time.Time
}

// Open loads the task collection from path. A missing, unreadable, or
// corrupt file yields an empty collection, never an error.
func Open(path string) *Store {
	tasks := loadTasks(path)

	nextID := 1
	for _, t := range tasks {
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}

	return &Store{
		path:   path,
		tasks:  tasks,
		nextID: nextID,
		now:    time.Now,
	}
}

// CreateOptions configures a new task. The zero value is valid.
type CreateOptions struct {
	// Details provides optional free-text context.
	Details string

	// StartDate is an optional YYYY-MM-DD start date.
	StartDate string

	// DueDate is an optional YYYY-MM-DD due date.
	DueDate string

	// EstimatedMinutes is the estimated effort. Negative values are
	// treated as zero.
	EstimatedMinutes int
}

// Add creates a new task at the front of the canonical order. The name is
// trimmed; if it trims to empty the call is a no-op and Add returns nil.
func (s *Store) Add(name string, opts CreateOptions) *Task {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	est := opts.EstimatedMinutes
	if est < 0 {
		est = 0
	}

	created := Task{
		ID:               s.nextID,
		Name:             name,
		Status:           StatusTodo,
		Details:          opts.Details,
		StartDate:        opts.StartDate,
		DueDate:          opts.DueDate,
		EstimatedMinutes: est,
	}
	s.nextID++

	s.tasks = append([]Task{created}, s.tasks...)
	s.mutated()

	return &created
}

// UpdateOptions configures fields to update on a task.
// Nil pointers mean "don't update this field".
type UpdateOptions struct {
	Name             *string
	Details          *string
	Status           *Status
	StartDate        *string
	DueDate          *string
	EstimatedMinutes *int

	// CompletedAt overrides the automatic completion timestamp when
	// SetCompletedAt is true; a nil CompletedAt then clears it. When
	// SetCompletedAt is false the store maintains the timestamp from
	// status transitions.
	CompletedAt    *time.Time
	SetCompletedAt bool
}

// Update merges the provided fields into the task with the given id and
// returns the updated task. An unknown id is a no-op and returns nil.
//
// A status change to done stamps CompletedAt with the current time; a change
// away from done clears it. An explicitly supplied CompletedAt wins in both
// directions.
func (s *Store) Update(id int, opts UpdateOptions) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	t := &s.tasks[i]

	if opts.Name != nil {
		t.Name = *opts.Name
	}
	if opts.Details != nil {
		t.Details = *opts.Details
	}
	if opts.Status != nil {
		previous := t.Status
		t.Status = *opts.Status
		if t.Status == StatusDone && previous != StatusDone {
			now := s.now()
			t.CompletedAt = &now
		}
		if t.Status != StatusDone && previous == StatusDone {
			t.CompletedAt = nil
		}
	}
	if opts.StartDate != nil {
		t.StartDate = *opts.StartDate
	}
	if opts.DueDate != nil {
		t.DueDate = *opts.DueDate
	}
	if opts.EstimatedMinutes != nil {
		est := *opts.EstimatedMinutes
		if est < 0 {
			est = 0
		}
		t.EstimatedMinutes = est
	}
	if opts.SetCompletedAt {
		t.CompletedAt = opts.CompletedAt
	}

	s.mutated()

	updated := *t
	return &updated
}

// SetStatus is a status-only shortcut for Update.
func (s *Store) SetStatus(id int, status Status) *Task {
	return s.Update(id, UpdateOptions{Status: &status})
}

// Delete removes the task with the given id from the canonical order.
// It reports whether a task was removed; an unknown id is a no-op.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.mutated()
	return true
}

// Reorder moves the task identified by fromID so it sits at the position of
// the task identified by toID, immediately preceding it when moving down the
// list. A missing id or fromID == toID is a no-op. Repeating the same
// reorder is idempotent.
func (s *Store) Reorder(fromID, toID int) bool {
	if fromID == toID {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fromIndex := s.indexOf(fromID)
	toIndex := s.indexOf(toID)
	if fromIndex < 0 || toIndex < 0 {
		return false
	}

	moved := s.tasks[fromIndex]
	s.tasks = append(s.tasks[:fromIndex], s.tasks[fromIndex+1:]...)

	// Recompute the target position after removal so the moved task lands
	// immediately before the target regardless of direction.
	toIndex = s.indexOf(toID)
	s.tasks = append(s.tasks[:toIndex], append([]Task{moved}, s.tasks[toIndex:]...)...)

	s.mutated()
	return true
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// List returns a copy of the canonical order.
func (s *Store) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Task(nil), s.tasks...)
}

// Snapshot returns a copy of the canonical order together with the snapshot
// version. The version changes on every mutation, so callers can memoize
// derived views against it.
func (s *Store) Snapshot() ([]Task, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Task(nil), s.tasks...), s.version
}

// Version returns the current snapshot version.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.version
}

// mutated bumps the snapshot version and persists the collection.
// Callers must hold s.mu.
func (s *Store) mutated() {
	s.version++
	// Persistence failures are non-fatal; the in-memory collection stays
	// authoritative and the next mutation writes a full snapshot again.
	_ = saveTasks(s.path, s.tasks)
}

// indexOf returns the canonical index of the task with the given id, or -1.
// Callers must hold s.mu.
func (s *Store) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
