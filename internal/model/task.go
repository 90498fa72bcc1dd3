package model

import (
	"time"

	"github.com/existflow/daybook/internal/calendar"
	"github.com/google/uuid"
)

// DefaultEstimatedHours is the estimate given to a new task
const DefaultEstimatedHours = 8.0

// TaskStatus is the progress state of a task
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every task status in display order
var TaskStatuses = []TaskStatus{StatusNotStarted, StatusInProgress, StatusCompleted}

// ParseTaskStatus converts a stored string, falling back to not_started
func ParseTaskStatus(s string) TaskStatus {
	for _, st := range TaskStatuses {
		if string(st) == s {
			return st
		}
	}
	return StatusNotStarted
}

// Next returns the status that follows s in the not_started → in_progress →
// completed cycle
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

// TaskPriority is the urgency of a task
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// ParseTaskPriority converts a stored string, falling back to medium
func ParseTaskPriority(s string) TaskPriority {
	switch TaskPriority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return TaskPriority(s)
	default:
		return PriorityMedium
	}
}

// SortOrder ranks priorities: high sorts first
func (p TaskPriority) SortOrder() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// RequirementPriority maps a task priority onto the requirement scale
func (p TaskPriority) RequirementPriority() RequirementPriority {
	switch p {
	case PriorityHigh:
		return RequirementP1
	case PriorityMedium:
		return RequirementP2
	default:
		return RequirementP3
	}
}

// Task is a unit of work scheduled over one or more calendar days.
// StartDate and EndDate are an inclusive day range.
type Task struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	StartDate      time.Time    `json:"start_date"`
	EndDate        time.Time    `json:"end_date"`
	EstimatedHours float64      `json:"estimated_hours"`
	Priority       TaskPriority `json:"priority"`
	Status         TaskStatus   `json:"status"`
	ProjectID      *string      `json:"project_id,omitempty"`
	RequirementID  *string      `json:"requirement_id,omitempty"`
	Notes          string       `json:"notes"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewTask creates a task with a fresh identity and defaults
func NewTask(title string, start, end time.Time) Task {
	now := time.Now()
	return Task{
		ID:             uuid.New().String(),
		Title:          title,
		StartDate:      start,
		EndDate:        end,
		EstimatedHours: DefaultEstimatedHours,
		Priority:       PriorityMedium,
		Status:         StatusNotStarted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsMultiDay returns true if the task spans more than one calendar day
func (t *Task) IsMultiDay() bool {
	return !calendar.SameDay(t.StartDate, t.EndDate)
}

// DaySpan is the inclusive count of calendar days the task covers.
// It is never less than 1.
func (t *Task) DaySpan() int {
	n := calendar.DaysBetween(t.StartDate, t.EndDate) + 1
	if n < 1 {
		return 1
	}
	return n
}

// IsOnDate reports whether date falls inside the task's day range
func (t *Task) IsOnDate(date time.Time) bool {
	target := calendar.StartOfDay(date)
	start := calendar.StartOfDay(t.StartDate)
	end := calendar.StartOfDay(t.EndDate)
	return !target.Before(start) && !target.After(end)
}

// IsOverdue returns true if the task is unfinished past its end date
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	return t.EndDate.Before(now)
}

// HoursPerDay spreads the estimate evenly across the day span
func (t *Task) HoursPerDay() float64 {
	return t.EstimatedHours / float64(t.DaySpan())
}

// ClampEnd moves EndDate up to StartDate when it precedes it
func (t *Task) ClampEnd() {
	if t.EndDate.Before(t.StartDate) {
		t.EndDate = t.StartDate
	}
}

// InProject reports whether the task belongs to projectID
func (t *Task) InProject(projectID string) bool {
	return t.ProjectID != nil && *t.ProjectID == projectID
}

// LinkedTo reports whether the task is linked to requirementID
func (t *Task) LinkedTo(requirementID string) bool {
	return t.RequirementID != nil && *t.RequirementID == requirementID
}
