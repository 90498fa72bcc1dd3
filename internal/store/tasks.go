package store

import (
	"time"

	"github.com/existflow/daybook/internal/logger"
	"github.com/existflow/daybook/internal/model"
	"github.com/existflow/daybook/internal/split"
)

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTask stores task together with a new requirement derived from it and
// returns the task as stored, linked to that requirement.
func (s *Store) AddTask(task model.Task) model.Task {
	s.mu.Lock()
	defer s.unlock()

	if s.taskIndex(task.ID) >= 0 {
		s.log.Warn("Task already exists", logger.F("task_id", task.ID))
		return task
	}

	now := s.now()
	req := model.Requirement{
		ID:             s.newID(),
		Title:          task.Title,
		Description:    task.Notes,
		Status:         model.RequirementDeveloping,
		Priority:       task.Priority.RequirementPriority(),
		ProjectID:      cloneString(task.ProjectID),
		RelatedTaskIDs: []string{task.ID},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.requirements = append(s.requirements, req)

	task.ClampEnd()
	task.RequirementID = &req.ID
	s.tasks = append(s.tasks, task)

	s.check("save task", s.gw.SaveTask(s.ctx, task))
	s.check("save requirement", s.gw.SaveRequirement(s.ctx, req))

	s.emit(EntityRequirement, OpCreate, req.ID)
	s.emit(EntityTask, OpCreate, task.ID)
	return task
}

// AddTaskWithoutRequirement stores task as is, without deriving a
// requirement. Split fragments are added this way.
func (s *Store) AddTaskWithoutRequirement(task model.Task) model.Task {
	s.mu.Lock()
	defer s.unlock()
	return s.addTaskOnly(task)
}

func (s *Store) addTaskOnly(task model.Task) model.Task {
	if s.taskIndex(task.ID) >= 0 {
		s.log.Warn("Task already exists", logger.F("task_id", task.ID))
		return task
	}
	task.ClampEnd()
	s.tasks = append(s.tasks, task)
	s.check("save task", s.gw.SaveTask(s.ctx, task))
	s.emit(EntityTask, OpCreate, task.ID)
	return task
}

// UpdateTask replaces the stored task with the same ID. A linked
// requirement receives the task's title, notes and project.
func (s *Store) UpdateTask(task model.Task) {
	s.mu.Lock()
	defer s.unlock()
	s.updateTask(task)
}

func (s *Store) updateTask(task model.Task) {
	i := s.taskIndex(task.ID)
	if i < 0 {
		return
	}

	now := s.now()
	task.ClampEnd()
	task.UpdatedAt = now
	s.tasks[i] = task
	s.check("save task", s.gw.SaveTask(s.ctx, task))
	s.emit(EntityTask, OpUpdate, task.ID)

	if task.RequirementID == nil {
		return
	}
	j := s.requirementIndex(*task.RequirementID)
	if j < 0 {
		return
	}
	req := &s.requirements[j]
	req.Title = task.Title
	req.Description = task.Notes
	req.ProjectID = cloneString(task.ProjectID)
	req.UpdatedAt = now
	s.check("save requirement", s.gw.SaveRequirement(s.ctx, *req))
	s.emit(EntityRequirement, OpUpdate, req.ID)
}

// DeleteTask removes task and the requirement it is linked to
func (s *Store) DeleteTask(task model.Task) {
	s.DeleteTaskByID(task.ID)
}

// DeleteTaskByID removes the task with id and its linked requirement
func (s *Store) DeleteTaskByID(id string) {
	s.mu.Lock()
	defer s.unlock()
	s.deleteTask(id)
}

func (s *Store) deleteTask(id string) {
	i := s.taskIndex(id)
	if i < 0 {
		return
	}
	task := s.tasks[i]

	if task.RequirementID != nil {
		if j := s.requirementIndex(*task.RequirementID); j >= 0 {
			s.requirements = append(s.requirements[:j], s.requirements[j+1:]...)
			s.check("delete requirement", s.gw.DeleteRequirement(s.ctx, *task.RequirementID))
			s.emit(EntityRequirement, OpDelete, *task.RequirementID)
		}
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.check("delete task", s.gw.DeleteTask(s.ctx, id))
	s.emit(EntityTask, OpDelete, id)
}

// MoveTask shifts the task so it starts at newStart, keeping its duration
func (s *Store) MoveTask(task model.Task, newStart time.Time) {
	s.mu.Lock()
	defer s.unlock()

	i := s.taskIndex(task.ID)
	if i < 0 {
		return
	}
	t := &s.tasks[i]
	duration := t.EndDate.Sub(t.StartDate)
	t.StartDate = newStart
	t.EndDate = newStart.Add(duration)
	t.ClampEnd()
	t.UpdatedAt = s.now()

	s.check("save task", s.gw.SaveTask(s.ctx, *t))
	s.emit(EntityTask, OpUpdate, t.ID)
}

// ResizeTask sets the task's end, never earlier than its start
func (s *Store) ResizeTask(task model.Task, newEnd time.Time) {
	s.mu.Lock()
	defer s.unlock()

	i := s.taskIndex(task.ID)
	if i < 0 {
		return
	}
	t := &s.tasks[i]
	t.EndDate = newEnd
	t.ClampEnd()
	t.UpdatedAt = s.now()

	s.check("save task", s.gw.SaveTask(s.ctx, *t))
	s.emit(EntityTask, OpUpdate, t.ID)
}

// DropTask reassigns the task to target. For a multi-day task, source is
// the day that was dragged out of its span; a zero source moves the whole
// task. Fragments created by the drop carry no requirement link.
func (s *Store) DropTask(task model.Task, source, target time.Time) split.Result {
	s.mu.Lock()
	defer s.unlock()

	i := s.taskIndex(task.ID)
	if i < 0 {
		return split.Result{}
	}

	res := split.Plan(s.tasks[i], source, target, s.now(), s.newID)
	for _, f := range res.Create {
		s.addTaskOnly(f)
	}
	switch {
	case res.Delete:
		s.deleteTask(task.ID)
	case res.Update != nil:
		s.updateTask(*res.Update)
	}

	s.log.Debug("Task dropped",
		logger.F("task_id", task.ID),
		logger.F("created", len(res.Create)),
		logger.F("deleted", res.Delete))
	return res
}
