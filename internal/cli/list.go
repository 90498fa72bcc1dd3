package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks for a day, a range of days, or a project.

Examples:
  daybook task list
  daybook task list --date tomorrow
  daybook task list --date 2025-03-10 --days 7
  daybook task list --project work`,
	RunE: runList,
}

var (
	listProject string
	listDate    string
	listDays    int
)

func init() {
	listCmd.Flags().StringVarP(&listProject, "project", "P", "", "Filter by project")
	listCmd.Flags().StringVar(&listDate, "date", "today", "Day to list")
	listCmd.Flags().IntVar(&listDays, "days", 1, "Number of days to list")
}

func runList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	if listProject != "" {
		p, err := findProject(a, listProject)
		if err != nil {
			return err
		}
		tasks := a.store.TasksForProject(p.ID)
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].StartDate.Before(tasks[j].StartDate)
		})
		printTasks(a, "📁 "+p.Name, tasks)
		return nil
	}

	day, err := parseDate(listDate, time.Now())
	if err != nil {
		return err
	}
	if listDays < 1 {
		listDays = 1
	}
	for i := 0; i < listDays; i++ {
		d := calendar.AddDays(day, i)
		header := fmt.Sprintf("📅 %s %s  %.1fh, %d/%d done",
			d.Format(dateLayout), d.Weekday().String()[:3],
			a.store.TotalHoursForDate(d),
			a.store.CompletedTasksCountForDate(d),
			len(a.store.TasksForDate(d)))
		if calendar.IsRestDay(d) {
			header += "  (rest day)"
		}
		printTasks(a, header, a.store.TasksForDate(d))
	}

	if n := a.store.OverdueTasksCount(); n > 0 {
		fmt.Printf("⚠ %d overdue task(s)\n\n", n)
	}
	return nil
}

func printTasks(a *app, header string, tasks []model.Task) {
	fmt.Printf("\n%s\n", header)
	fmt.Println(strings.Repeat("─", 72))

	if len(tasks) == 0 {
		fmt.Println("  No tasks. Add one with: daybook task add \"Your task\"")
		fmt.Println()
		return
	}
	for _, t := range tasks {
		printTask(a, t)
	}
	fmt.Println()
}

func printTask(a *app, t model.Task) {
	// Status icon
	icon := "[ ]"
	switch t.Status {
	case model.StatusCompleted:
		icon = "[x]"
	case model.StatusInProgress:
		icon = "[~]"
	}

	// Priority indicator
	priority := "  "
	switch t.Priority {
	case model.PriorityHigh:
		priority = "▲ "
	case model.PriorityLow:
		priority = "▽ "
	}

	project := ""
	if p, ok := a.store.ProjectForTask(t); ok {
		project = p.Name
	}

	fmt.Printf("  %s  %-8s  %s%-32s  %-23s  %5.1fh  %s\n",
		icon, shortID(t.ID), priority, truncate(t.Title, 32), formatSpan(t), t.HoursPerDay(), project)
}
