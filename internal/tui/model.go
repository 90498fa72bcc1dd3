package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/logger"
	"github.com/existflow/daybook/internal/model"
	"github.com/existflow/daybook/internal/store"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeConfirmDelete
	ModeHelp
)

// Model is the day agenda
type Model struct {
	store     *store.Store
	events    <-chan store.Event
	weekStart calendar.WeekStart
	now       func() time.Time

	// Data for the selected day
	day      time.Time
	tasks    []model.Task
	hours    float64
	overdue  int
	projects map[string]model.Project

	// UI state
	width      int
	height     int
	mode       Mode
	taskCursor int

	// Input
	input textinput.Model
	help  help.Model

	message string
}

// NewModel creates a new TUI model
func NewModel(s *store.Store, ws calendar.WeekStart) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		store:     s,
		events:    s.Subscribe(),
		weekStart: ws,
		now:       time.Now,
		day:       calendar.StartOfDay(time.Now()),
		mode:      ModeNormal,
		input:     ti,
		help:      help.New(),
	}

	m.loadData()
	logger.Debug("TUI model initialized", logger.F("tasks", len(m.tasks)))
	return m
}

// loadData refreshes the selected day from the store
func (m *Model) loadData() {
	m.tasks = m.store.TasksForDate(m.day)
	m.hours = m.store.TotalHoursForDate(m.day)
	m.overdue = m.store.OverdueTasksCount()

	m.projects = make(map[string]model.Project)
	for _, p := range m.store.Projects() {
		m.projects[p.ID] = p
	}

	if m.taskCursor >= len(m.tasks) {
		m.taskCursor = len(m.tasks) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.tasks) {
		return &m.tasks[m.taskCursor]
	}
	return nil
}

// setDay selects another day and resets the cursor
func (m *Model) setDay(d time.Time) {
	m.day = calendar.StartOfDay(d)
	m.taskCursor = 0
	m.loadData()
}
