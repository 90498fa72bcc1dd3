package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/daybook/internal/calendar"
	"github.com/spf13/cobra"
)

var monthCmd = &cobra.Command{
	Use:   "month [date]",
	Short: "Show a month with planned hours per day",
	Long: `Print a month grid. Each day shows the number of tasks and the planned
hours. Rest days (weekends and public holidays, minus make-up workdays)
are dimmed.

Examples:
  daybook month
  daybook month 2025-10-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonth,
}

var (
	monthRest  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	monthToday = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA"))
	monthBusy  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

func runMonth(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	now := time.Now()

	ref := now
	if len(args) == 1 {
		d, err := parseDate(args[0], now)
		if err != nil {
			return err
		}
		ref = d
	}
	ws := a.cfg.Week()

	fmt.Printf("\n%s\n\n", ref.Format("January 2006"))

	var header []string
	for _, d := range calendar.DaysInWeek(ref, ws) {
		header = append(header, fmt.Sprintf("%-10s", d.Weekday().String()[:3]))
	}
	fmt.Println(strings.Join(header, ""))

	for _, week := range calendar.MonthGrid(ref, ws) {
		var line []string
		for _, d := range week {
			if d == nil {
				line = append(line, strings.Repeat(" ", 10))
				continue
			}
			hours := a.store.TotalHoursForDate(*d)
			count := len(a.store.TasksForDate(*d))
			cell := fmt.Sprintf("%2d", d.Day())
			if count > 0 {
				cell += fmt.Sprintf(" %d·%.0fh", count, hours)
			}
			cell = fmt.Sprintf("%-10s", cell)

			switch {
			case calendar.SameDay(*d, now):
				cell = monthToday.Render(cell)
			case hours > 8:
				cell = monthBusy.Render(cell)
			case calendar.IsRestDay(*d):
				cell = monthRest.Render(cell)
			}
			line = append(line, cell)
		}
		fmt.Println(strings.Join(line, ""))
	}

	days := calendar.DaysInMonth(ref)
	from, to := days[0], calendar.EndOfDay(days[len(days)-1])
	fmt.Printf("\n%d task(s), %.1fh planned\n\n", len(a.store.TasksInRange(from, to)), a.store.TotalHoursForRange(from, to))
	return nil
}
