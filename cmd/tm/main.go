// Package main implements the tm CLI tool.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amonks/taskmaster/internal/config"
	"github.com/amonks/taskmaster/task"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tm",
	Short:         "Taskmaster - personal task management",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// loadConfig loads the merged global + project configuration.
func loadConfig() (*config.Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(workDir)
}

// openStore opens the task store at the configured location.
func openStore() (*task.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path, err := cfg.TasksPath()
	if err != nil {
		return nil, err
	}
	return task.Open(path), nil
}
