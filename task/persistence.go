package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// loadTasks reads the task collection from path. Any failure (missing file,
// unreadable file, corrupt JSON) yields an empty collection.
func loadTasks(path string) []Task {
	if path == "" {
		return nil
	}

	var tasks []Task
	err := withFileLock(path, func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, &tasks)
	})
	if err != nil {
		return nil
	}
	return tasks
}

// saveTasks writes the full collection to path atomically.
func saveTasks(path string, tasks []Task) error {
	if path == "" {
		return nil
	}

	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	return withFileLock(path, func() error {
		// Write atomically via temp file
		tmpPath := path + ".tmp"
		if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
			return fmt.Errorf("write temp tasks file: %w", err)
		}
		if err := os.Rename(tmpPath, path); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("rename tasks file: %w", err)
		}
		return nil
	})
}

// withFileLock executes fn while holding an exclusive lock on a lock file
// next to path. Creates parent directories if they don't exist.
func withFileLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}
