package cli

import (
	"fmt"
	"time"

	"github.com/existflow/daybook/internal/calendar"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [task-id] [date]",
	Short: "Move a whole task to a new start day",
	Long: `Shift a task so it starts on the given day, keeping its length.

Examples:
  daybook task move abc123 tomorrow
  daybook task move abc123 2025-03-17`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

var dropCmd = &cobra.Command{
	Use:   "drop [task-id] [target-date]",
	Short: "Move one day of a task to another day",
	Long: `Reassign a task to another day as the calendar does on drag and drop.
With --from, only that day of a multi-day task is moved: the task is
shortened or split and the day becomes a new single-day task.

Examples:
  daybook task drop abc123 2025-03-20
  daybook task drop abc123 2025-03-20 --from 2025-03-11`,
	Args: cobra.ExactArgs(2),
	RunE: runDrop,
}

var dropFrom string

func init() {
	dropCmd.Flags().StringVar(&dropFrom, "from", "", "Day of the task's span being moved")
}

func runMove(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	task, err := findTask(a, args[0])
	if err != nil {
		return err
	}
	start, err := parseDate(args[1], time.Now())
	if err != nil {
		return err
	}

	// keep the time of day
	offset := task.StartDate.Sub(calendar.StartOfDay(task.StartDate))
	a.store.MoveTask(task, start.Add(offset))

	moved, _ := a.store.Task(task.ID)
	fmt.Printf("→ Moved: \"%s\" to %s\n", moved.Title, formatSpan(moved))
	return nil
}

func runDrop(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	now := time.Now()

	task, err := findTask(a, args[0])
	if err != nil {
		return err
	}
	target, err := parseDate(args[1], now)
	if err != nil {
		return err
	}
	var source time.Time
	if dropFrom != "" {
		if source, err = parseDate(dropFrom, now); err != nil {
			return err
		}
		if !task.IsOnDate(source) {
			return fmt.Errorf("%s is not within the task's days", source.Format(dateLayout))
		}
	}

	res := a.store.DropTask(task, source, target)

	switch {
	case res.Delete:
		fmt.Printf("🗑️  Removed original: \"%s\"\n", task.Title)
	case res.Update != nil:
		fmt.Printf("→ %s: \"%s\" %s\n", shortID(res.Update.ID), res.Update.Title, formatSpan(*res.Update))
	}
	for _, t := range res.Create {
		fmt.Printf("+ %s: \"%s\" %s (%.1fh)\n", shortID(t.ID), t.Title, formatSpan(t), t.EstimatedHours)
	}
	return nil
}
