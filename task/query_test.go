package task

import (
	"testing"
	"time"
)

func TestFilterAndSort_EmptyQuery(t *testing.T) {
	done := date(2025, 1, 3)
	tasks := []Task{
		{ID: 3, Name: "write docs", Status: StatusTodo},
		{ID: 2, Name: "review pr", Status: StatusInProgress},
		{ID: 1, Name: "setup repo", Status: StatusDone, CompletedAt: &done},
	}

	views := FilterAndSort(tasks, "", SortDefault)
	if len(views.Active) != 2 || len(views.Completed) != 1 {
		t.Fatalf("expected 2 active / 1 completed, got %d / %d", len(views.Active), len(views.Completed))
	}
	if views.Active[0].ID != 3 || views.Active[1].ID != 2 {
		t.Errorf("default sort should keep canonical order, got %d then %d", views.Active[0].ID, views.Active[1].ID)
	}
}

func TestFilterAndSort_StatusPrefix(t *testing.T) {
	done := date(2025, 1, 3)
	tasks := []Task{
		{ID: 3, Name: "a", Status: StatusTodo},
		{ID: 2, Name: "b", Status: StatusInProgress},
		{ID: 1, Name: "c", Status: StatusDone, CompletedAt: &done},
	}

	for _, tc := range []struct {
		query   string
		wantIDs []int
	}{
		{"status:done", []int{1}},
		{"s:done", []int{1}},
		{"status:in", []int{2}},
		{"  STATUS:TODO  ", []int{3}},
	} {
		t.Run(tc.query, func(t *testing.T) {
			views := FilterAndSort(tasks, tc.query, SortDefault)
			got := append(append([]Task{}, views.Active...), views.Completed...)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("expected %d matches, got %d", len(tc.wantIDs), len(got))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Errorf("match %d: expected id %d, got %d", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestFilterAndSort_DatePrefixes(t *testing.T) {
	tasks := []Task{
		{ID: 1, Name: "a", Status: StatusTodo, DueDate: "2025-02-01"},
		{ID: 2, Name: "b", Status: StatusTodo, DueDate: "2025-02-10", StartDate: "2025-02-01"},
	}

	views := FilterAndSort(tasks, "due:2025-02-01", SortDefault)
	if len(views.Active) != 1 || views.Active[0].ID != 1 {
		t.Errorf("due: should match the due date exactly, got %+v", views.Active)
	}

	views = FilterAndSort(tasks, "start:2025-02-01", SortDefault)
	if len(views.Active) != 1 || views.Active[0].ID != 2 {
		t.Errorf("start: should match the start date exactly, got %+v", views.Active)
	}

	// Exact match, not prefix: a bare year matches nothing.
	views = FilterAndSort(tasks, "due:2025", SortDefault)
	if len(views.Active) != 0 {
		t.Errorf("due: should not prefix-match, got %+v", views.Active)
	}
}

func TestFilterAndSort_Substring(t *testing.T) {
	tasks := []Task{
		{ID: 1, Name: "Write RELEASE notes", Status: StatusTodo},
		{ID: 2, Name: "other", Details: "blocked on release", Status: StatusTodo},
		{ID: 3, Name: "unrelated", Status: StatusTodo},
	}

	views := FilterAndSort(tasks, "release", SortDefault)
	if len(views.Active) != 2 {
		t.Fatalf("expected 2 matches across name and details, got %d", len(views.Active))
	}
}

func TestFilterAndSort_DueSortEmptyLast(t *testing.T) {
	tasks := []Task{
		{ID: 1, Name: "undated", Status: StatusTodo},
		{ID: 2, Name: "later", Status: StatusTodo, DueDate: "2025-03-01"},
		{ID: 3, Name: "soon", Status: StatusTodo, DueDate: "2025-02-01"},
		{ID: 4, Name: "also undated", Status: StatusTodo},
	}

	views := FilterAndSort(tasks, "", SortDue)
	wantIDs := []int{3, 2, 1, 4}
	for i, id := range wantIDs {
		if views.Active[i].ID != id {
			t.Errorf("position %d: expected id %d, got %d", i, id, views.Active[i].ID)
		}
	}
}

func TestFilterAndSort_EstimatedSort(t *testing.T) {
	tasks := []Task{
		{ID: 1, Name: "big", Status: StatusTodo, EstimatedMinutes: 90},
		{ID: 2, Name: "none", Status: StatusTodo},
		{ID: 3, Name: "small", Status: StatusTodo, EstimatedMinutes: 15},
	}

	views := FilterAndSort(tasks, "", SortEstimated)
	wantIDs := []int{2, 3, 1}
	for i, id := range wantIDs {
		if views.Active[i].ID != id {
			t.Errorf("position %d: expected id %d, got %d", i, id, views.Active[i].ID)
		}
	}
}

func TestFilterAndSort_CompletedSortNewestFirst(t *testing.T) {
	early := date(2025, 1, 1)
	late := date(2025, 1, 9)
	tasks := []Task{
		{ID: 1, Name: "early", Status: StatusDone, CompletedAt: &early},
		{ID: 2, Name: "late", Status: StatusDone, CompletedAt: &late},
		{ID: 3, Name: "unstamped", Status: StatusDone},
	}

	views := FilterAndSort(tasks, "", SortCompleted)
	wantIDs := []int{2, 1, 3}
	for i, id := range wantIDs {
		if views.Completed[i].ID != id {
			t.Errorf("position %d: expected id %d, got %d", i, id, views.Completed[i].ID)
		}
	}
}

func TestViewCache(t *testing.T) {
	store := openTestStore(t)
	store.Add("a", CreateOptions{})
	store.Add("b", CreateOptions{})

	var cache ViewCache

	tasks, version := store.Snapshot()
	first := cache.Views(tasks, version, "", SortDefault)
	if len(first.Active) != 2 {
		t.Fatalf("expected 2 active tasks, got %d", len(first.Active))
	}

	// Same snapshot and inputs return the memoized result even with stale
	// task data, proving no recompute happened.
	cached := cache.Views(nil, version, "", SortDefault)
	if len(cached.Active) != 2 {
		t.Errorf("expected memoized views, got %d active", len(cached.Active))
	}

	// A changed query recomputes against the provided tasks.
	fresh := cache.Views(tasks, version, "b", SortDefault)
	if len(fresh.Active) != 1 || fresh.Active[0].Name != "b" {
		t.Errorf("expected recompute for new query, got %+v", fresh.Active)
	}

	// A bumped version recomputes too.
	store.Add("c", CreateOptions{})
	tasks, version = store.Snapshot()
	bumped := cache.Views(tasks, version, "", SortDefault)
	if len(bumped.Active) != 3 {
		t.Errorf("expected recompute for new version, got %d active", len(bumped.Active))
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}
