package stats

import (
	"testing"
	"time"

	"github.com/amonks/taskmaster/internal/dates"
	"github.com/amonks/taskmaster/task"
)

var asOf = time.Date(2025, time.June, 15, 14, 30, 0, 0, time.Local)

func day(offset int) string {
	return dates.Format(dates.AddDays(dates.Midnight(asOf), offset))
}

func completedOn(offset int) *time.Time {
	t := dates.AddDays(dates.Midnight(asOf), offset).Add(10 * time.Hour)
	return &t
}

func TestCompute_DeadlineBuckets(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Status: task.StatusTodo, DueDate: day(-1), EstimatedMinutes: 30},
		{ID: 2, Status: task.StatusDone, DueDate: day(0), EstimatedMinutes: 20, CompletedAt: completedOn(0)},
	}

	s := Compute(tasks, asOf)
	if s.Overdue != 1 {
		t.Errorf("overdue: expected 1, got %d", s.Overdue)
	}
	if s.DueToday != 1 {
		t.Errorf("dueToday: expected 1, got %d", s.DueToday)
	}
	if s.EstimatedSum != 50 {
		t.Errorf("estSum: expected 50, got %d", s.EstimatedSum)
	}
	if s.EstimatedActive != 30 {
		t.Errorf("estActive: expected 30, got %d", s.EstimatedActive)
	}
}

func TestCompute_StatusCounts(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Status: task.StatusTodo},
		{ID: 2, Status: task.StatusTodo},
		{ID: 3, Status: task.StatusInProgress},
		{ID: 4, Status: task.StatusDone, CompletedAt: completedOn(0)},
	}

	s := Compute(tasks, asOf)
	if s.Total != 4 || s.Todo != 2 || s.InProgress != 1 || s.Done != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
}

func TestCompute_Upcoming7ExcludesToday(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Status: task.StatusTodo, DueDate: day(0)},
		{ID: 2, Status: task.StatusTodo, DueDate: day(1)},
		{ID: 3, Status: task.StatusTodo, DueDate: day(7)},
		{ID: 4, Status: task.StatusTodo, DueDate: day(8)},
	}

	s := Compute(tasks, asOf)
	if s.Upcoming7 != 2 {
		t.Errorf("upcoming7: expected 2 (days +1 and +7 only), got %d", s.Upcoming7)
	}
	if s.DueToday != 1 {
		t.Errorf("dueToday: expected 1, got %d", s.DueToday)
	}
}

func TestCompute_DoneDueEarlierIsNotOverdue(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Status: task.StatusDone, DueDate: day(-3), CompletedAt: completedOn(-3)},
	}

	s := Compute(tasks, asOf)
	if s.Overdue != 0 {
		t.Errorf("done tasks should never count as overdue, got %d", s.Overdue)
	}
}

func TestCompute_NoDueDateContributesToNoBucket(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Status: task.StatusTodo, EstimatedMinutes: 10},
	}

	s := Compute(tasks, asOf)
	if s.Overdue != 0 || s.DueToday != 0 || s.Upcoming7 != 0 {
		t.Errorf("dateless task leaked into deadline buckets: %+v", s)
	}
	if s.EstimatedSum != 10 {
		t.Errorf("dateless task should still count estimates, got %d", s.EstimatedSum)
	}
}

func TestCompute_CompletedPast7(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Status: task.StatusDone, CompletedAt: completedOn(0)},
		{ID: 2, Status: task.StatusDone, CompletedAt: completedOn(-2)},
		{ID: 3, Status: task.StatusDone, CompletedAt: completedOn(-2)},
		{ID: 4, Status: task.StatusDone, CompletedAt: completedOn(-6)},
		{ID: 5, Status: task.StatusDone, CompletedAt: completedOn(-7)},
		{ID: 6, Status: task.StatusTodo},
	}

	s := Compute(tasks, asOf)
	want := [7]int{1, 0, 2, 0, 0, 0, 1}
	if s.CompletedPast7 != want {
		t.Errorf("completedPast7: expected %v, got %v", want, s.CompletedPast7)
	}
	// 4 in-window completions out of 6 tasks, rounded.
	if s.CompletionRate7d != 67 {
		t.Errorf("completionRate7d: expected 67, got %d", s.CompletionRate7d)
	}
}

func TestCompute_ZeroEstimateStillCountsForRate(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Status: task.StatusDone, CompletedAt: completedOn(0)},
	}

	s := Compute(tasks, asOf)
	if s.CompletionRate7d != 100 {
		t.Errorf("expected 100%% completion rate, got %d", s.CompletionRate7d)
	}
	if s.WithEstimates != 0 {
		t.Errorf("zero estimate should not count as estimated, got %d", s.WithEstimates)
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, asOf)
	if s.Total != 0 || s.CompletionRate7d != 0 {
		t.Errorf("empty snapshot should produce zero stats, got %+v", s)
	}
}

func TestBurndown(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Status: task.StatusDone, EstimatedMinutes: 30, CompletedAt: completedOn(-4)},
		{ID: 2, Status: task.StatusDone, EstimatedMinutes: 20, CompletedAt: completedOn(-1)},
		{ID: 3, Status: task.StatusTodo, EstimatedMinutes: 50},
	}

	got := Burndown(tasks, asOf, 7)
	// Baseline 100; 30 burned on day -4, 20 more on day -1.
	want := []int{100, 100, 70, 70, 70, 50, 50}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestBurndown_FlooredAtZero(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Status: task.StatusDone, EstimatedMinutes: 40, CompletedAt: completedOn(-1)},
		// Completed before the window opens, still burned from the baseline.
		{ID: 2, Status: task.StatusDone, EstimatedMinutes: 60, CompletedAt: completedOn(-30)},
	}

	got := Burndown(tasks, asOf, 3)
	want := []int{40, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestSparklinePoints(t *testing.T) {
	points := SparklinePoints([7]int{3, 0, 0, 0, 0, 0, 1})
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}

	// Oldest day (1 completion) plots first, newest (3, the max) last.
	first, last := points[0], points[6]
	if first.X != 4 {
		t.Errorf("expected left padding 4, got %g", first.X)
	}
	if last.X != 156 {
		t.Errorf("expected right edge 156, got %g", last.X)
	}
	if last.Y != 4 {
		t.Errorf("window max should plot at the top pad, got %g", last.Y)
	}

	// All-zero weeks draw a flat baseline at the bottom.
	flat := SparklinePoints([7]int{})
	for _, p := range flat {
		if p.Y != 36 {
			t.Errorf("expected flat baseline at 36, got %g", p.Y)
		}
	}
}

func TestSparklinePath(t *testing.T) {
	path := SparklinePath([]SparklinePoint{{X: 4, Y: 36}, {X: 30, Y: 4}})
	if path != "M 4,36 L 30,4" {
		t.Errorf("unexpected path %q", path)
	}
}
