package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/model"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage calendar tasks",
	Long:    `Add, list, edit and reschedule tasks. Adding a task also creates its requirement.`,
}

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task. A matching requirement is created and linked to it
unless --no-requirement is given.

Examples:
  daybook task add "Write report"
  daybook task add "Offsite" --start 2025-03-10 --days 3 --hours 16
  daybook task add "Fix login" -p high --project work`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addProject  string
	addPriority string
	addStart    string
	addDays     int
	addHours    float64
	addNotes    string
	addNoReq    bool
)

func init() {
	addCmd.Flags().StringVarP(&addProject, "project", "P", "", "Project name or id (defaults to the current context)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(model.PriorityMedium), "Priority (high, medium, low)")
	addCmd.Flags().StringVarP(&addStart, "start", "s", "today", "First day (YYYY-MM-DD, today, tomorrow, +N)")
	addCmd.Flags().IntVarP(&addDays, "days", "d", 1, "Number of days the task spans")
	addCmd.Flags().Float64VarP(&addHours, "hours", "H", model.DefaultEstimatedHours, "Estimated hours")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "Notes")
	addCmd.Flags().BoolVar(&addNoReq, "no-requirement", false, "Do not create a requirement")

	taskCmd.AddCommand(addCmd)
	taskCmd.AddCommand(listCmd)
	taskCmd.AddCommand(doneCmd)
	taskCmd.AddCommand(editCmd)
	taskCmd.AddCommand(moveCmd)
	taskCmd.AddCommand(dropCmd)
	taskCmd.AddCommand(deleteCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	title := strings.Join(args, " ")

	start, err := parseDate(addStart, time.Now())
	if err != nil {
		return err
	}
	if addDays < 1 {
		addDays = 1
	}

	task := model.NewTask(title, start, calendar.EndOfDay(calendar.AddDays(start, addDays-1)))
	task.Priority = model.ParseTaskPriority(addPriority)
	task.EstimatedHours = addHours
	task.Notes = addNotes

	// Use context if no project specified
	projectRef := addProject
	if !cmd.Flags().Changed("project") {
		projectRef = currentContext(a)
	}
	projectName := "none"
	if projectRef != "" {
		p, err := findProject(a, projectRef)
		if err != nil {
			return err
		}
		task.ProjectID = &p.ID
		projectName = p.Name
	}

	if addNoReq {
		task = a.store.AddTaskWithoutRequirement(task)
	} else {
		task = a.store.AddTask(task)
	}

	fmt.Printf("✓ Added to [%s]: \"%s\" %s (%s, %.1fh) id %s\n",
		projectName, task.Title, formatSpan(task), task.Priority, task.EstimatedHours, shortID(task.ID))
	return nil
}

func formatSpan(t model.Task) string {
	if !t.IsMultiDay() {
		return t.StartDate.Format(dateLayout)
	}
	return t.StartDate.Format(dateLayout) + " → " + t.EndDate.Format(dateLayout)
}
