package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amonks/taskmaster/internal/dates"
	"github.com/amonks/taskmaster/internal/ui"
	"github.com/amonks/taskmaster/task"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var (
	taskAddDetails  string
	taskAddStart    string
	taskAddDue      string
	taskAddEstimate int
)

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var (
	taskListQuery string
	taskListSort  string
	taskListJSON  bool
	taskListAll   bool
)

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// task update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>...",
	Short: "Update one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskUpdate,
}

var (
	taskUpdateName     string
	taskUpdateDetails  string
	taskUpdateStatus   string
	taskUpdateStart    string
	taskUpdateDue      string
	taskUpdateEstimate int
)

// task done
var taskDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark tasks as done",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDone,
}

// task start
var taskStartCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Mark tasks as in progress",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskStart,
}

// task delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDelete,
}

// task move
var taskMoveCmd = &cobra.Command{
	Use:   "move <id> <before-id>",
	Short: "Move a task to the position of another task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskMove,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskUpdateCmd,
		taskDoneCmd, taskStartCmd, taskDeleteCmd, taskMoveCmd)

	taskAddCmd.Flags().StringVarP(&taskAddDetails, "details", "d", "", "Free-text details")
	taskAddCmd.Flags().StringVar(&taskAddStart, "start", "", "Start date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&taskAddDue, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().IntVarP(&taskAddEstimate, "estimate", "e", 0, "Estimated minutes")

	taskListCmd.Flags().StringVarP(&taskListQuery, "query", "q", "", "Filter query (status:<w>, due:<date>, start:<date>, or substring)")
	taskListCmd.Flags().StringVarP(&taskListSort, "sort", "s", "", "Sort key (default, due, estimated, completed)")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")
	taskListCmd.Flags().BoolVarP(&taskListAll, "all", "a", false, "Include completed tasks")

	taskShowCmd.Flags().BoolVar(&taskShowJSON, "json", false, "Output as JSON")

	taskUpdateCmd.Flags().StringVar(&taskUpdateName, "name", "", "New name")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateDetails, "details", "d", "", "New details")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStatus, "status", "", "New status (todo, in_progress, done)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStart, "start", "", "New start date (YYYY-MM-DD)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateDue, "due", "", "New due date (YYYY-MM-DD)")
	taskUpdateCmd.Flags().IntVarP(&taskUpdateEstimate, "estimate", "e", 0, "New estimated minutes")

	addDetailsFlagAliases(taskAddCmd, taskUpdateCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	for _, date := range []string{taskAddStart, taskAddDue} {
		if date != "" && !dates.Valid(date) {
			return fmt.Errorf("%w: %q", task.ErrInvalidDate, date)
		}
	}
	if taskAddEstimate < 0 {
		return task.ErrNegativeEstimate
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	created := store.Add(args[0], task.CreateOptions{
		Details:          taskAddDetails,
		StartDate:        taskAddStart,
		DueDate:          taskAddDue,
		EstimatedMinutes: taskAddEstimate,
	})
	if created == nil {
		return task.ErrEmptyName
	}

	fmt.Printf("Added task %d: %s\n", created.ID, created.Name)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	key, err := task.ParseSortKey(taskListSort)
	if err != nil {
		return err
	}

	tasks, version := store.Snapshot()
	views := viewCache.Views(tasks, version, taskListQuery, key)

	if taskListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if taskListAll {
			return enc.Encode(views)
		}
		return enc.Encode(views.Active)
	}

	if len(views.Active) == 0 && (!taskListAll || len(views.Completed) == 0) {
		fmt.Println("No tasks found.")
		return nil
	}

	printTaskTable(views.Active)
	if taskListAll && len(views.Completed) > 0 {
		fmt.Println()
		fmt.Println(ui.Heading("Completed"))
		printTaskTable(views.Completed)
	}
	return nil
}

var viewCache task.ViewCache

func runTaskShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	tasks, err := tasksByIDs(store, args)
	if err != nil {
		return err
	}

	if taskShowJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	for i, t := range tasks {
		if i > 0 {
			fmt.Println("---")
		}
		printTaskDetail(t)
	}
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	opts := task.UpdateOptions{}

	// Only set fields that were explicitly provided
	if cmd.Flags().Changed("name") {
		opts.Name = &taskUpdateName
	}
	if cmd.Flags().Changed("details") {
		opts.Details = &taskUpdateDetails
	}
	if cmd.Flags().Changed("status") {
		status, err := task.ParseStatus(taskUpdateStatus)
		if err != nil {
			return err
		}
		opts.Status = &status
	}
	if cmd.Flags().Changed("start") {
		if taskUpdateStart != "" && !dates.Valid(taskUpdateStart) {
			return fmt.Errorf("%w: %q", task.ErrInvalidDate, taskUpdateStart)
		}
		opts.StartDate = &taskUpdateStart
	}
	if cmd.Flags().Changed("due") {
		if taskUpdateDue != "" && !dates.Valid(taskUpdateDue) {
			return fmt.Errorf("%w: %q", task.ErrInvalidDate, taskUpdateDue)
		}
		opts.DueDate = &taskUpdateDue
	}
	if cmd.Flags().Changed("estimate") {
		if taskUpdateEstimate < 0 {
			return task.ErrNegativeEstimate
		}
		opts.EstimatedMinutes = &taskUpdateEstimate
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		updated := store.Update(id, opts)
		if updated == nil {
			return fmt.Errorf("no task with id %d", id)
		}
		fmt.Printf("Updated %d: %s\n", updated.ID, updated.Name)
	}
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	return setStatusAll(args, task.StatusDone, "Completed")
}

func runTaskStart(cmd *cobra.Command, args []string) error {
	return setStatusAll(args, task.StatusInProgress, "Started")
}

func setStatusAll(args []string, status task.Status, verb string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		updated := store.SetStatus(id, status)
		if updated == nil {
			return fmt.Errorf("no task with id %d", id)
		}
		fmt.Printf("%s %d: %s\n", verb, updated.ID, updated.Name)
	}
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if !store.Delete(id) {
			return fmt.Errorf("no task with id %d", id)
		}
		fmt.Printf("Deleted %d\n", id)
	}
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	if !store.Reorder(ids[0], ids[1]) {
		return fmt.Errorf("cannot move %d to %d", ids[0], ids[1])
	}
	fmt.Printf("Moved %d before %d\n", ids[0], ids[1])
	return nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

func tasksByIDs(store *task.Store, args []string) ([]task.Task, error) {
	ids, err := parseIDs(args)
	if err != nil {
		return nil, err
	}

	tasks := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		t, ok := store.Get(id)
		if !ok {
			return nil, fmt.Errorf("no task with id %d", id)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
