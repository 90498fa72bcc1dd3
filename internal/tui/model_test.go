package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/db"
	"github.com/existflow/daybook/internal/model"
	"github.com/existflow/daybook/internal/store"
)

var today = time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

func newTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "daybook.sqlite"))
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	s := store.New(d, store.WithClock(func() time.Time { return today }))
	m := NewModel(s, calendar.Monday)
	m.now = func() time.Time { return today }
	m.setDay(today)
	return m, s
}

func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func addOn(s *store.Store, title string, first, last time.Time, hours float64) model.Task {
	task := model.NewTask(title, calendar.StartOfDay(first), calendar.EndOfDay(last))
	task.EstimatedHours = hours
	return s.AddTask(task)
}

func TestDayNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	tests := []struct {
		key  string
		want time.Time
	}{
		{"l", calendar.AddDays(today, 1)},
		{"h", today},
		{"h", calendar.AddDays(today, -1)},
		{"L", calendar.AddDays(today, 6)},
		{"H", calendar.AddDays(today, -1)},
		{"t", today},
	}
	for _, tt := range tests {
		m = press(t, m, tt.key)
		if !calendar.SameDay(m.day, tt.want) {
			t.Errorf("after %q day = %s, want %s", tt.key, m.day.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

func TestAgendaShowsSelectedDay(t *testing.T) {
	m, s := newTestModel(t)
	addOn(s, "Report", today, today, 3)
	addOn(s, "Migration", today, calendar.AddDays(today, 1), 4)
	addOn(s, "Old chore", calendar.AddDays(today, -3), calendar.AddDays(today, -3), 1)
	m.loadData()

	if len(m.tasks) != 2 {
		t.Fatalf("tasks today = %d, want 2", len(m.tasks))
	}
	if m.hours != 5 {
		t.Errorf("hours = %v, want 5", m.hours)
	}
	if m.overdue != 1 {
		t.Errorf("overdue = %d, want 1", m.overdue)
	}

	m = press(t, m, "l")
	if len(m.tasks) != 1 || m.tasks[0].Title != "Migration" {
		t.Errorf("tomorrow tasks = %+v", m.tasks)
	}
}

func TestCycleStatus(t *testing.T) {
	m, s := newTestModel(t)
	task := addOn(s, "Report", today, today, 2)
	m.loadData()

	want := []model.TaskStatus{model.StatusInProgress, model.StatusCompleted, model.StatusNotStarted}
	for _, st := range want {
		m = press(t, m, "x")
		got, ok := s.Task(task.ID)
		if !ok || got.Status != st {
			t.Fatalf("status = %v, want %v", got.Status, st)
		}
	}
}

func TestAddTaskFromPrompt(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "l")

	m = press(t, m, "a")
	if m.mode != ModeAddTask {
		t.Fatalf("mode = %v, want add", m.mode)
	}
	m.input.SetValue("  Standup  ")
	m = press(t, m, "enter")

	if m.mode != ModeNormal {
		t.Errorf("prompt should close after enter")
	}
	tasks := s.TasksForDate(calendar.AddDays(today, 1))
	if len(tasks) != 1 || tasks[0].Title != "Standup" {
		t.Fatalf("tasks = %+v", tasks)
	}
	if len(s.Requirements()) != 1 {
		t.Errorf("new task should get a linked requirement")
	}

	m = press(t, m, "a")
	m = press(t, m, "esc")
	if m.mode != ModeNormal || len(s.Tasks()) != 1 {
		t.Errorf("esc should cancel without adding")
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, s := newTestModel(t)
	addOn(s, "Report", today, today, 2)
	m.loadData()

	m = press(t, m, "d")
	m = press(t, m, "n")
	if len(s.Tasks()) != 1 {
		t.Fatalf("task deleted without confirmation")
	}

	m = press(t, m, "d")
	m = press(t, m, "y")
	if len(s.Tasks()) != 0 || len(m.tasks) != 0 {
		t.Errorf("task should be gone after confirming")
	}
	if len(s.Requirements()) != 0 {
		t.Errorf("linked requirement should be deleted too")
	}
}

func TestShiftMovesOnlySelectedDay(t *testing.T) {
	m, s := newTestModel(t)
	task := addOn(s, "Migration", calendar.AddDays(today, -1), calendar.AddDays(today, 1), 6)
	m.loadData()

	m = press(t, m, ">")

	tasks := s.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("interior move should leave 3 pieces, got %d", len(tasks))
	}
	if len(m.tasks) != 0 {
		t.Errorf("selected day should be empty after moving its piece")
	}
	orig, ok := s.Task(task.ID)
	if !ok || !calendar.SameDay(orig.EndDate, calendar.AddDays(today, -1)) {
		t.Errorf("original should end the day before, got %+v", orig)
	}
}

func TestStoreEventsRefreshAgenda(t *testing.T) {
	m, s := newTestModel(t)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should listen for store events")
	}

	addOn(s, "Written elsewhere", today, today, 1)
	if len(m.tasks) != 0 {
		t.Fatalf("model should not see the task before the event")
	}

	next, again := m.Update(cmd())
	m = next.(Model)
	if len(m.tasks) == 0 {
		t.Errorf("agenda should reload on store event")
	}
	if again == nil {
		t.Errorf("model should keep listening")
	}
}
