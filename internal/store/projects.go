package store

import (
	"github.com/existflow/daybook/internal/model"
)

func (s *Store) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// AddProject stores a new project
func (s *Store) AddProject(p model.Project) model.Project {
	s.mu.Lock()
	defer s.unlock()

	if s.projectIndex(p.ID) >= 0 {
		return p
	}
	if p.ColorHex == "" {
		p.ColorHex = model.DefaultProjectColor
	}
	s.projects = append(s.projects, p)
	s.check("save project", s.gw.SaveProject(s.ctx, p))
	s.emit(EntityProject, OpCreate, p.ID)
	return p
}

// UpdateProject replaces the stored project with the same ID
func (s *Store) UpdateProject(p model.Project) {
	s.mu.Lock()
	defer s.unlock()

	i := s.projectIndex(p.ID)
	if i < 0 {
		return
	}
	if p.ColorHex == "" {
		p.ColorHex = model.DefaultProjectColor
	}
	s.projects[i] = p
	s.check("save project", s.gw.SaveProject(s.ctx, p))
	s.emit(EntityProject, OpUpdate, p.ID)
}

// DeleteProject removes the project and every task assigned to it.
// Requirements that reference the project are left alone.
func (s *Store) DeleteProject(p model.Project) {
	s.mu.Lock()
	defer s.unlock()

	i := s.projectIndex(p.ID)
	if i < 0 {
		return
	}

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.InProject(p.ID) {
			s.check("delete task", s.gw.DeleteTask(s.ctx, t.ID))
			s.emit(EntityTask, OpDelete, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept

	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	s.check("delete project", s.gw.DeleteProject(s.ctx, p.ID))
	s.emit(EntityProject, OpDelete, p.ID)
}
