package cli

import (
	"fmt"
	"time"

	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task",
	Long: `Change a task's fields. Title, notes and project are copied to the
linked requirement.

Examples:
  daybook task edit abc123 --title "Write final report"
  daybook task edit abc123 --end 2025-03-14
  daybook task edit abc123 --project none`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle    string
	editNotes    string
	editPriority string
	editHours    float64
	editProject  string
	editEnd      string
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editNotes, "notes", "n", "", "New notes")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "Priority (high, medium, low)")
	editCmd.Flags().Float64VarP(&editHours, "hours", "H", 0, "Estimated hours")
	editCmd.Flags().StringVarP(&editProject, "project", "P", "", "Project name or id, or 'none'")
	editCmd.Flags().StringVar(&editEnd, "end", "", "Last day of the task")
}

func runEdit(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	task, err := findTask(a, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		task.Title = editTitle
	}
	if flags.Changed("notes") {
		task.Notes = editNotes
	}
	if flags.Changed("priority") {
		task.Priority = model.ParseTaskPriority(editPriority)
	}
	if flags.Changed("hours") {
		task.EstimatedHours = editHours
	}
	if flags.Changed("project") {
		if editProject == "none" {
			task.ProjectID = nil
		} else {
			p, err := findProject(a, editProject)
			if err != nil {
				return err
			}
			task.ProjectID = &p.ID
		}
	}
	a.store.UpdateTask(task)

	if flags.Changed("end") {
		end, err := parseDate(editEnd, time.Now())
		if err != nil {
			return err
		}
		a.store.ResizeTask(task, calendar.EndOfDay(end))
	}

	updated, _ := a.store.Task(task.ID)
	fmt.Printf("✓ Updated: \"%s\" %s\n", updated.Title, formatSpan(updated))
	return nil
}
