package task

import (
	"sort"
	"strings"
	"sync"

	internalstrings "github.com/amonks/taskmaster/internal/strings"
)

// Views partitions a filtered, sorted task list into active and completed
// subsets.
type Views struct {
	Active    []Task `json:"active"`
	Completed []Task `json:"completed"`
}

// FilterAndSort filters tasks by a free-text or field query, sorts each
// partition by the given key, and splits done tasks from the rest.
//
// The query is trimmed and matched case-insensitively. "status:<word>" and
// "s:<word>" match tasks whose status starts with the word. "due:<date>" and
// "start:<date>" match the date field exactly. Anything else matches as a
// substring of name, details, status, due date, or start date. An empty
// query matches everything.
//
// The input is never mutated; sorting is stable so tied tasks keep their
// canonical relative order.
func FilterAndSort(tasks []Task, query string, key SortKey) Views {
	match := compileQuery(query)

	var views Views
	for _, t := range tasks {
		if !match(t) {
			continue
		}
		if t.Status == StatusDone {
			views.Completed = append(views.Completed, t)
		} else {
			views.Active = append(views.Active, t)
		}
	}

	sortTasks(views.Active, key)
	sortTasks(views.Completed, key)

	return views
}

func compileQuery(query string) func(Task) bool {
	query = internalstrings.NormalizeLowerTrimSpace(query)
	if query == "" {
		return func(Task) bool { return true }
	}

	for _, prefix := range []string{"status:", "s:"} {
		if word, ok := strings.CutPrefix(query, prefix); ok {
			return func(t Task) bool {
				return strings.HasPrefix(string(t.Status), word)
			}
		}
	}
	if date, ok := strings.CutPrefix(query, "due:"); ok {
		return func(t Task) bool { return strings.ToLower(t.DueDate) == date }
	}
	if date, ok := strings.CutPrefix(query, "start:"); ok {
		return func(t Task) bool { return strings.ToLower(t.StartDate) == date }
	}

	return func(t Task) bool {
		for _, field := range []string{t.Name, t.Details, string(t.Status), t.DueDate, t.StartDate} {
			if strings.Contains(strings.ToLower(field), query) {
				return true
			}
		}
		return false
	}
}

func sortTasks(tasks []Task, key SortKey) {
	switch key {
	case SortDue:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			if a == "" || b == "" {
				// Tasks without a due date sort last.
				return a != "" && b == ""
			}
			return a < b
		})
	case SortEstimated:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].EstimatedMinutes < tasks[j].EstimatedMinutes
		})
	case SortCompleted:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].CompletedAt, tasks[j].CompletedAt
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			return a.After(*b)
		})
	}
}

// ViewCache memoizes the most recent FilterAndSort result by snapshot
// version, query, and sort key, so re-rendering an unchanged snapshot is
// cheap.
type ViewCache struct {
	mu      sync.Mutex
	valid   bool
	version uint64
	query   string
	key     SortKey
	views   Views
}

// Views returns the filtered and sorted views for the given snapshot,
// recomputing only when the snapshot version, query, or sort key changed.
func (c *ViewCache) Views(tasks []Task, version uint64, query string, key SortKey) Views {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.version == version && c.query == query && c.key == key {
		return c.views
	}

	c.views = FilterAndSort(tasks, query, key)
	c.valid = true
	c.version = version
	c.query = query
	c.key = key
	return c.views
}
