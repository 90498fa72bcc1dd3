// Package split plans how a task changes when one of its days is dragged
// onto another calendar day.
package split

import (
	"time"

	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/model"
)

// Result lists the changes a drop produces. Update and Delete refer to the
// dropped task itself; Create holds new fragments, which never carry a
// requirement link.
type Result struct {
	Update *model.Task
	Delete bool
	Create []model.Task
}

// Plan computes the outcome of dropping task onto target. source is the day
// of the task's span that was dragged; a zero source moves the whole task.
// The relocated day always gets estimatedHours / daySpan. Shrinking from
// either end only changes the dates of the kept task. An interior split gives
// each piece its per-day share, so the three pieces add up to the original
// estimate.
func Plan(task model.Task, source, target, now time.Time, newID func() string) Result {
	if !task.IsMultiDay() {
		t := task
		t.StartDate = calendar.StartOfDay(target)
		t.EndDate = calendar.EndOfDay(target)
		t.UpdatedAt = now
		return Result{Update: &t}
	}

	if source.IsZero() || !task.IsOnDate(source) {
		return Result{Update: shift(task, target, now)}
	}

	share := task.EstimatedHours / float64(task.DaySpan())
	moved := fragment(task, calendar.StartOfDay(target), calendar.EndOfDay(target), now, newID())
	moved.EstimatedHours = share

	res := Result{Create: []model.Task{moved}}

	switch {
	case calendar.SameDay(source, task.StartDate):
		newStart := calendar.AddDays(task.StartDate, 1)
		if newStart.After(task.EndDate) && !calendar.SameDay(newStart, task.EndDate) {
			res.Delete = true
			return res
		}
		t := task
		t.StartDate = newStart
		t.ClampEnd()
		t.UpdatedAt = now
		res.Update = &t

	case calendar.SameDay(source, task.EndDate):
		newEnd := calendar.AddDays(task.EndDate, -1)
		if newEnd.Before(task.StartDate) && !calendar.SameDay(newEnd, task.StartDate) {
			res.Delete = true
			return res
		}
		t := task
		if calendar.SameDay(newEnd, task.StartDate) {
			t.EndDate = calendar.EndOfDay(task.StartDate)
		} else {
			t.EndDate = newEnd
		}
		t.UpdatedAt = now
		res.Update = &t

	default:
		first := task
		first.EndDate = calendar.EndOfDay(calendar.AddDays(source, -1))
		first.EstimatedHours = share * float64(first.DaySpan())
		first.UpdatedAt = now
		res.Update = &first

		second := fragment(task, calendar.StartOfDay(calendar.AddDays(source, 1)), task.EndDate, now, newID())
		second.EstimatedHours = share * float64(second.DaySpan())
		res.Create = append(res.Create, second)
	}

	return res
}

// shift moves the whole task so it starts on target, keeping its duration
// and time of day.
func shift(task model.Task, target, now time.Time) *model.Task {
	offset := task.StartDate.Sub(calendar.StartOfDay(task.StartDate))
	duration := task.EndDate.Sub(task.StartDate)

	t := task
	t.StartDate = calendar.StartOfDay(target).Add(offset)
	t.EndDate = t.StartDate.Add(duration)
	t.UpdatedAt = now
	return &t
}

func fragment(task model.Task, start, end, now time.Time, id string) model.Task {
	f := task
	f.ID = id
	f.StartDate = start
	f.EndDate = end
	f.RequirementID = nil
	f.CreatedAt = now
	f.UpdatedAt = now
	return f
}
