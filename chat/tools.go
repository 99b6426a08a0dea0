package chat

import (
	"encoding/json"
	"fmt"

	"github.com/amonks/taskmaster/task"
)

// Tool names the collaborator may call.
const (
	ToolCreateTask = "create_task"
	ToolUpdateTask = "update_task"
	ToolDeleteTask = "delete_task"
	ToolListTasks  = "list_tasks"
)

// Tools dispatches collaborator tool calls to a task store. Every call
// produces a JSON-marshallable result: either the operation's output or an
// error payload. Failures never reach the store as exceptions; they come
// back as `{"error": ...}` results relayed to the collaborator.
type Tools struct {
	store *task.Store
}

// NewTools creates a dispatcher bound to a store.
func NewTools(store *task.Store) *Tools {
	return &Tools{store: store}
}

type toolError struct {
	Error string `json:"error"`
}

func errorResult(format string, args ...any) json.RawMessage {
	raw, _ := json.Marshal(toolError{Error: fmt.Sprintf(format, args...)})
	return raw
}

func okResult(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return errorResult("encoding tool result: %v", err)
	}
	return raw
}

// Execute runs one tool call and returns its result payload. Unknown tools
// and malformed arguments yield an error payload, never a Go error: the
// collaborator decides how to react.
func (tl *Tools) Execute(call ToolCall) json.RawMessage {
	switch call.Name {
	case ToolCreateTask:
		return tl.createTask(call.Args)
	case ToolUpdateTask:
		return tl.updateTask(call.Args)
	case ToolDeleteTask:
		return tl.deleteTask(call.Args)
	case ToolListTasks:
		return tl.listTasks(call.Args)
	default:
		return errorResult("unknown tool %q", call.Name)
	}
}

// ExecuteAll runs each call in order and returns the results, for relaying
// back in the next message's toolResponse field.
func (tl *Tools) ExecuteAll(calls []ToolCall) []json.RawMessage {
	results := make([]json.RawMessage, len(calls))
	for i, call := range calls {
		results[i] = tl.Execute(call)
	}
	return results
}

type createArgs struct {
	Name             string `json:"name"`
	Details          string `json:"details"`
	StartDate        string `json:"startDate"`
	DueDate          string `json:"dueDate"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

func (tl *Tools) createTask(args json.RawMessage) json.RawMessage {
	var a createArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("create_task: bad arguments: %v", err)
	}

	created := tl.store.Add(a.Name, task.CreateOptions{
		Details:          a.Details,
		StartDate:        a.StartDate,
		DueDate:          a.DueDate,
		EstimatedMinutes: a.EstimatedMinutes,
	})
	if created == nil {
		return errorResult("create_task: name must not be empty")
	}
	return okResult(created)
}

type updateArgs struct {
	ID               int     `json:"id"`
	Name             *string `json:"name"`
	Details          *string `json:"details"`
	Status           *string `json:"status"`
	StartDate        *string `json:"startDate"`
	DueDate          *string `json:"dueDate"`
	EstimatedMinutes *int    `json:"estimatedMinutes"`
}

func (tl *Tools) updateTask(args json.RawMessage) json.RawMessage {
	var a updateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("update_task: bad arguments: %v", err)
	}

	opts := task.UpdateOptions{
		Name:             a.Name,
		Details:          a.Details,
		StartDate:        a.StartDate,
		DueDate:          a.DueDate,
		EstimatedMinutes: a.EstimatedMinutes,
	}
	if a.Status != nil {
		status, err := task.ParseStatus(*a.Status)
		if err != nil {
			return errorResult("update_task: %v", err)
		}
		opts.Status = &status
	}

	updated := tl.store.Update(a.ID, opts)
	if updated == nil {
		return errorResult("update_task: no task with id %d", a.ID)
	}
	return okResult(updated)
}

type deleteArgs struct {
	ID int `json:"id"`
}

func (tl *Tools) deleteTask(args json.RawMessage) json.RawMessage {
	var a deleteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("delete_task: bad arguments: %v", err)
	}

	if !tl.store.Delete(a.ID) {
		return errorResult("delete_task: no task with id %d", a.ID)
	}
	return okResult(map[string]any{"deleted": a.ID})
}

type listArgs struct {
	Query string `json:"query"`
	Sort  string `json:"sort"`
}

func (tl *Tools) listTasks(args json.RawMessage) json.RawMessage {
	var a listArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return errorResult("list_tasks: bad arguments: %v", err)
		}
	}

	key, err := task.ParseSortKey(a.Sort)
	if err != nil {
		return errorResult("list_tasks: %v", err)
	}

	return okResult(task.FilterAndSort(tl.store.List(), a.Query, key))
}
