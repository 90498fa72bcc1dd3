package cli

import (
	"fmt"

	"github.com/existflow/daybook/internal/model"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Long: `Mark a task as completed.

Examples:
  daybook task done abc123
  daybook task done abc123 --undo
  daybook task done abc123 --start`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var (
	doneUndo  bool
	doneStart bool
)

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark task as not started")
	doneCmd.Flags().BoolVar(&doneStart, "start", false, "Mark task as in progress")
}

func runDone(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	task, err := findTask(a, args[0])
	if err != nil {
		return err
	}

	switch {
	case doneUndo:
		task.Status = model.StatusNotStarted
	case doneStart:
		task.Status = model.StatusInProgress
	default:
		task.Status = model.StatusCompleted
	}
	a.store.UpdateTask(task)

	switch task.Status {
	case model.StatusCompleted:
		fmt.Printf("✓ Completed: \"%s\"\n", task.Title)
	case model.StatusInProgress:
		fmt.Printf("▶ Started: \"%s\"\n", task.Title)
	default:
		fmt.Printf("○ Reopened: \"%s\"\n", task.Title)
	}
	return nil
}
