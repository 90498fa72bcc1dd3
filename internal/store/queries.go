package store

import (
	"sort"
	"time"

	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/model"
)

// Tasks returns a copy of every task
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Task(nil), s.tasks...)
}

// Projects returns a copy of every project
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Project(nil), s.projects...)
}

// Requirements returns a copy of every requirement
func (s *Store) Requirements() []model.Requirement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Requirement(nil), s.requirements...)
}

// Notes returns a copy of every note in storage order
func (s *Store) Notes() []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Note(nil), s.notes...)
}

// Task looks up a task by id
func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Project looks up a project by id
func (s *Store) Project(id string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.projectIndex(id); i >= 0 {
		return s.projects[i], true
	}
	return model.Project{}, false
}

// Requirement looks up a requirement by id
func (s *Store) Requirement(id string) (model.Requirement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.requirementIndex(id); i >= 0 {
		return s.requirements[i], true
	}
	return model.Requirement{}, false
}

// Note looks up a note by id
func (s *Store) Note(id string) (model.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.noteIndex(id); i >= 0 {
		return s.notes[i], true
	}
	return model.Note{}, false
}

// TasksForDate returns tasks covering date, high priority first
func (s *Store) TasksForDate(date time.Time) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasksForDate(date)
}

func (s *Store) tasksForDate(date time.Time) []model.Task {
	var out []model.Task
	for _, t := range s.tasks {
		if t.IsOnDate(date) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.SortOrder() < out[j].Priority.SortOrder()
	})
	return out
}

// TasksForProject returns the tasks assigned to projectID
func (s *Store) TasksForProject(projectID string) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Task
	for _, t := range s.tasks {
		if t.InProject(projectID) {
			out = append(out, t)
		}
	}
	return out
}

// TasksInRange returns tasks whose span overlaps [from, to]
func (s *Store) TasksInRange(from, to time.Time) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Task
	for _, t := range s.tasks {
		if !t.StartDate.After(to) && !t.EndDate.Before(from) {
			out = append(out, t)
		}
	}
	return out
}

// ProjectForTask returns the task's project, if it still exists
func (s *Store) ProjectForTask(task model.Task) (model.Project, bool) {
	if task.ProjectID == nil {
		return model.Project{}, false
	}
	return s.Project(*task.ProjectID)
}

// TotalHoursForDate sums the share of each task's estimate that falls on
// date. A multi-day task contributes its estimate divided by its day span.
func (s *Store) TotalHoursForDate(date time.Time) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalHoursForDate(date)
}

func (s *Store) totalHoursForDate(date time.Time) float64 {
	total := 0.0
	for _, t := range s.tasksForDate(date) {
		total += t.HoursPerDay()
	}
	return total
}

// TotalHoursForRange accumulates TotalHoursForDate for each day from
// from through to.
func (s *Store) TotalHoursForRange(from, to time.Time) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for d := calendar.StartOfDay(from); !d.After(to); d = calendar.AddDays(d, 1) {
		total += s.totalHoursForDate(d)
	}
	return total
}

// CompletedTasksCountForDate counts completed tasks covering date
func (s *Store) CompletedTasksCountForDate(date time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, t := range s.tasksForDate(date) {
		if t.Status == model.StatusCompleted {
			n++
		}
	}
	return n
}

// OverdueTasksCount counts unfinished tasks whose end has passed
func (s *Store) OverdueTasksCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	n := 0
	for _, t := range s.tasks {
		if t.IsOverdue(now) {
			n++
		}
	}
	return n
}

// RequirementsForStatus returns requirements in status, newest first
func (s *Store) RequirementsForStatus(status model.RequirementStatus) []model.Requirement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Requirement
	for _, r := range s.requirements {
		if r.Status == status {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// RequirementsCountForStatus counts requirements in status
func (s *Store) RequirementsCountForStatus(status model.RequirementStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.requirements {
		if r.Status == status {
			n++
		}
	}
	return n
}

// RequirementsForProject returns the requirements assigned to projectID
func (s *Store) RequirementsForProject(projectID string) []model.Requirement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Requirement
	for _, r := range s.requirements {
		if r.InProject(projectID) {
			out = append(out, r)
		}
	}
	return out
}

// ProjectForRequirement returns the requirement's project, if it still exists
func (s *Store) ProjectForRequirement(r model.Requirement) (model.Project, bool) {
	if r.ProjectID == nil {
		return model.Project{}, false
	}
	return s.Project(*r.ProjectID)
}

// TasksForRequirement returns the tasks linked to r
func (s *Store) TasksForRequirement(r model.Requirement) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Task
	for _, t := range s.tasks {
		if t.LinkedTo(r.ID) {
			out = append(out, t)
		}
	}
	return out
}

// RequirementForTask returns the requirement the task is linked to
func (s *Store) RequirementForTask(task model.Task) (model.Requirement, bool) {
	if task.RequirementID == nil {
		return model.Requirement{}, false
	}
	return s.Requirement(*task.RequirementID)
}
