package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/daybook/internal/model"
)

// Color palette
var (
	// Priority colors
	PriorityHigh   = lipgloss.Color("#FF6B6B") // Red
	PriorityMedium = lipgloss.Color("#FFE66D") // Yellow
	PriorityLow    = lipgloss.Color("#4ECDC4") // Blue

	// Status colors
	Completed  = lipgloss.Color("#95E1A3") // Green
	InProgress = lipgloss.Color("#FFB347") // Orange
	Overdue    = lipgloss.Color("#FF6B6B") // Red
	RestDay    = lipgloss.Color("#6C757D") // Gray

	// UI colors
	Primary   = lipgloss.Color("#5B8DEF")
	Secondary = lipgloss.Color("#6C757D")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	// Week sidebar
	SidebarStyle = lipgloss.NewStyle().
			Width(24).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	DayItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	DayItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	DayRestStyle = lipgloss.NewStyle().
			Foreground(RestDay).
			Padding(0, 1)

	// Agenda
	AgendaStyle = lipgloss.NewStyle().
			Padding(1, 2)

	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	// Priority badges
	PriorityHighStyle   = lipgloss.NewStyle().Foreground(PriorityHigh).Bold(true)
	PriorityMediumStyle = lipgloss.NewStyle().Foreground(PriorityMedium)
	PriorityLowStyle    = lipgloss.NewStyle().Foreground(PriorityLow)

	OverdueStyle = lipgloss.NewStyle().Foreground(Overdue).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// GetPriorityStyle returns the style for a given priority
func GetPriorityStyle(p model.TaskPriority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return PriorityHighStyle
	case model.PriorityLow:
		return PriorityLowStyle
	default:
		return PriorityMediumStyle
	}
}

// FormatPriority returns a formatted priority badge
func FormatPriority(p model.TaskPriority) string {
	style := GetPriorityStyle(p)
	switch p {
	case model.PriorityHigh:
		return style.Render("▲")
	case model.PriorityLow:
		return style.Render("▽")
	default:
		return style.Render("•")
	}
}

// FormatStatus returns the checkbox for a task status
func FormatStatus(s model.TaskStatus) string {
	switch s {
	case model.StatusCompleted:
		return lipgloss.NewStyle().Foreground(Completed).Render("[x]")
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(InProgress).Render("[~]")
	default:
		return "[ ]"
	}
}
