package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/model"
	"github.com/existflow/daybook/internal/store"
)

// storeEventMsg carries a change published by the store
type storeEventMsg store.Event

// Init starts listening for store changes
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks until the store publishes a change
func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return storeEventMsg(e)
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeEventMsg:
		m.loadData()
		return m, m.waitForEvent()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// Handle mode-specific input
		switch m.mode {
		case ModeAddTask:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		// Normal mode key handling
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.taskCursor < len(m.tasks)-1 {
			m.taskCursor++
		}

	case key.Matches(msg, keys.PrevDay):
		m.setDay(calendar.AddDays(m.day, -1))

	case key.Matches(msg, keys.NextDay):
		m.setDay(calendar.AddDays(m.day, 1))

	case key.Matches(msg, keys.PrevWeek):
		m.setDay(calendar.AddDays(m.day, -7))

	case key.Matches(msg, keys.NextWeek):
		m.setDay(calendar.AddDays(m.day, 7))

	case key.Matches(msg, keys.Today):
		m.setDay(m.now())

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddTask
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Done):
		m.handleCycleStatus()

	case key.Matches(msg, keys.Delete):
		if t := m.currentTask(); t != nil {
			m.mode = ModeConfirmDelete
			m.message = fmt.Sprintf("Delete \"%s\"? (y/N)", truncate(t.Title, 30))
		}

	case key.Matches(msg, keys.Later):
		m.handleShift(1)

	case key.Matches(msg, keys.Earlier):
		m.handleShift(-1)

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

// handleCycleStatus advances not started → in progress → completed
func (m *Model) handleCycleStatus() {
	t := m.currentTask()
	if t == nil {
		return
	}
	updated := *t
	updated.Status = t.Status.Next()
	m.store.UpdateTask(updated)
	m.message = fmt.Sprintf("%s: %s", truncate(updated.Title, 30), updated.Status)
	m.loadData()
}

// handleShift moves the selected day of the task by delta days. For a
// multi-day task only this day moves; the rest of the span stays.
func (m *Model) handleShift(delta int) {
	t := m.currentTask()
	if t == nil {
		return
	}
	target := calendar.AddDays(m.day, delta)
	res := m.store.DropTask(*t, m.day, target)

	switch {
	case len(res.Create) > 0:
		m.message = fmt.Sprintf("Moved one day of \"%s\" to %s", truncate(t.Title, 24), target.Format("Jan 2"))
	default:
		m.message = fmt.Sprintf("Moved \"%s\" to %s", truncate(t.Title, 24), target.Format("Jan 2"))
	}
	m.loadData()
}

// updateInput handles the add-task prompt
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		title := strings.TrimSpace(m.input.Value())
		m.mode = ModeNormal
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		task := model.NewTask(title, m.day, calendar.EndOfDay(m.day))
		m.store.AddTask(task)
		m.message = fmt.Sprintf("Added \"%s\"", truncate(title, 30))
		m.loadData()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateConfirm waits for y to delete the selected task
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	if !key.Matches(msg, keys.Confirm) {
		m.message = "Cancelled"
		return m, nil
	}
	if t := m.currentTask(); t != nil {
		m.store.DeleteTask(*t)
		m.message = fmt.Sprintf("Deleted \"%s\"", truncate(t.Title, 30))
		m.loadData()
	}
	return m, nil
}

// weekDays returns the seven days shown in the sidebar
func (m Model) weekDays() []time.Time {
	return calendar.DaysInWeek(m.day, m.weekStart)
}
