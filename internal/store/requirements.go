package store

import (
	"github.com/existflow/daybook/internal/model"
)

func (s *Store) requirementIndex(id string) int {
	for i := range s.requirements {
		if s.requirements[i].ID == id {
			return i
		}
	}
	return -1
}

// AddRequirement stores a standalone requirement
func (s *Store) AddRequirement(r model.Requirement) model.Requirement {
	s.mu.Lock()
	defer s.unlock()

	if s.requirementIndex(r.ID) >= 0 {
		return r
	}
	if r.RelatedTaskIDs == nil {
		r.RelatedTaskIDs = []string{}
	}
	s.requirements = append(s.requirements, r)
	s.check("save requirement", s.gw.SaveRequirement(s.ctx, r))
	s.emit(EntityRequirement, OpCreate, r.ID)
	return r
}

// UpdateRequirement replaces the stored requirement with the same ID. The
// linked task receives its title, description and project.
func (s *Store) UpdateRequirement(r model.Requirement) {
	s.mu.Lock()
	defer s.unlock()
	s.updateRequirement(r)
}

func (s *Store) updateRequirement(r model.Requirement) {
	i := s.requirementIndex(r.ID)
	if i < 0 {
		return
	}

	now := s.now()
	r.UpdatedAt = now
	s.requirements[i] = r
	s.check("save requirement", s.gw.SaveRequirement(s.ctx, r))
	s.emit(EntityRequirement, OpUpdate, r.ID)

	j := s.linkedTaskIndex(r.ID)
	if j < 0 {
		return
	}
	t := &s.tasks[j]
	t.Title = r.Title
	t.Notes = r.Description
	t.ProjectID = cloneString(r.ProjectID)
	t.UpdatedAt = now
	s.check("save task", s.gw.SaveTask(s.ctx, *t))
	s.emit(EntityTask, OpUpdate, t.ID)
}

// SetRequirementStatus moves a requirement to status. Any status may follow
// any other; only unknown values are rejected.
func (s *Store) SetRequirementStatus(id string, status model.RequirementStatus) error {
	if _, err := model.ParseRequirementStatus(string(status)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.unlock()

	i := s.requirementIndex(id)
	if i < 0 {
		return nil
	}
	r := s.requirements[i]
	r.Status = status
	s.updateRequirement(r)
	return nil
}

// DeleteRequirement removes the requirement and its linked task
func (s *Store) DeleteRequirement(r model.Requirement) {
	s.DeleteRequirementByID(r.ID)
}

// DeleteRequirementByID removes the requirement with id and its linked task
func (s *Store) DeleteRequirementByID(id string) {
	s.mu.Lock()
	defer s.unlock()
	s.deleteRequirement(id)
}

func (s *Store) deleteRequirement(id string) {
	i := s.requirementIndex(id)
	if i < 0 {
		return
	}

	if j := s.linkedTaskIndex(id); j >= 0 {
		taskID := s.tasks[j].ID
		s.tasks = append(s.tasks[:j], s.tasks[j+1:]...)
		s.check("delete task", s.gw.DeleteTask(s.ctx, taskID))
		s.emit(EntityTask, OpDelete, taskID)
	}

	s.requirements = append(s.requirements[:i], s.requirements[i+1:]...)
	s.check("delete requirement", s.gw.DeleteRequirement(s.ctx, id))
	s.emit(EntityRequirement, OpDelete, id)
}

// linkedTaskIndex finds the task whose RequirementID is id
func (s *Store) linkedTaskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].LinkedTo(id) {
			return i
		}
	}
	return -1
}
