package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderWeek()
	agenda := m.renderAgenda()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, agenda)

	if m.mode == ModeAddTask {
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeHelp {
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderWeek() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Daybook") + "\n")
	s.WriteString(HelpStyle.Render(m.day.Format("January 2006")) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(Border).Render(repeat("─", 20)) + "\n\n")

	now := m.now()
	for _, d := range m.weekDays() {
		cursor := "  "
		style := DayItemStyle
		if calendar.IsRestDay(d) {
			style = DayRestStyle
		}
		if calendar.SameDay(d, m.day) {
			cursor = "❯ "
			style = DayItemSelectedStyle
		}

		label := d.Format("Mon 02")
		if calendar.SameDay(d, now) {
			label += "*"
		}
		line := fmt.Sprintf("%s%-8s %4.1fh", cursor, label, m.store.TotalHoursForDate(d))
		s.WriteString(style.Render(line) + "\n")
	}

	return SidebarStyle.Height(m.height - 2).Render(s.String())
}

func (m Model) renderAgenda() string {
	width := m.width - 26
	var s strings.Builder

	done := 0
	for _, t := range m.tasks {
		if t.Status == model.StatusCompleted {
			done++
		}
	}
	header := fmt.Sprintf("%s  %d/%d done  %.1fh planned",
		m.day.Format("Monday, Jan 2"), done, len(m.tasks), m.hours)
	s.WriteString(HeaderStyle.Render(header) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(Border).Render(repeat("─", width-4)) + "\n\n")

	if len(m.tasks) == 0 {
		s.WriteString(HelpStyle.Render("  No tasks. Press 'a' to add one."))
	}

	now := m.now()
	for i, t := range m.tasks {
		cursor := "  "
		style := TaskItemStyle
		if i == m.taskCursor {
			cursor = "❯ "
			style = TaskItemSelectedStyle
		}
		if t.Status == model.StatusCompleted {
			style = TaskDoneStyle
		}

		span := ""
		if t.IsMultiDay() {
			span = fmt.Sprintf(" (%d/%d)", calendar.DaysBetween(t.StartDate, m.day)+1, t.DaySpan())
		}
		project := ""
		if t.ProjectID != nil {
			if p, ok := m.projects[*t.ProjectID]; ok {
				project = lipgloss.NewStyle().Foreground(lipgloss.Color(p.ColorHex)).Render(p.Name)
			}
		}

		title := truncate(t.Title, width-40) + span
		if t.IsOverdue(now) {
			title = OverdueStyle.Render(title)
		}

		line := fmt.Sprintf("%s%s %s %s  %4.1fh  %s",
			cursor, FormatStatus(t.Status), FormatPriority(t.Priority), title, t.HoursPerDay(), project)
		s.WriteString(style.Render(line) + "\n")
	}

	return AgendaStyle.Width(width).Height(m.height - 2).Render(s.String())
}

func (m Model) renderStatusBar() string {
	left := m.message
	if left == "" {
		left = m.help.View(keys)
	}
	right := ""
	if m.overdue > 0 {
		right = OverdueStyle.Render(fmt.Sprintf("⚠ %d overdue", m.overdue))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	return StatusBarStyle.Width(m.width).Render(left + repeat(" ", gap) + right)
}

func (m Model) renderModal() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(Primary).
		Render("New task on " + m.day.Format("Mon Jan 2"))
	return ModalStyle.Render(title + "\n\n" + m.input.View() + "\n\n" +
		HelpStyle.Render("enter save • esc cancel"))
}

func (m Model) renderHelp() string {
	full := m.help
	full.ShowAll = true
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center,
		ModalStyle.Render(HeaderStyle.Render("Keys")+"\n\n"+full.View(keys)))
}
