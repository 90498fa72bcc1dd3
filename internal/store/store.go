// Package store holds the in-memory view of tasks, projects, requirements
// and notes, keeps them consistent with each other and writes every change
// through to the database.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/existflow/daybook/internal/logger"
	"github.com/existflow/daybook/internal/model"
	"github.com/google/uuid"
)

// Gateway persists entities. *db.DB implements it.
type Gateway interface {
	FetchAllTasks(ctx context.Context) ([]model.Task, error)
	SaveTask(ctx context.Context, t model.Task) error
	SaveTasks(ctx context.Context, tasks []model.Task) error
	DeleteTask(ctx context.Context, id string) error

	FetchAllProjects(ctx context.Context) ([]model.Project, error)
	SaveProject(ctx context.Context, p model.Project) error
	SaveProjects(ctx context.Context, projects []model.Project) error
	DeleteProject(ctx context.Context, id string) error

	FetchAllRequirements(ctx context.Context) ([]model.Requirement, error)
	SaveRequirement(ctx context.Context, r model.Requirement) error
	SaveRequirements(ctx context.Context, reqs []model.Requirement) error
	DeleteRequirement(ctx context.Context, id string) error

	FetchAllNotes(ctx context.Context) ([]model.Note, error)
	SaveNote(ctx context.Context, n model.Note) error
	SaveNotes(ctx context.Context, notes []model.Note) error
	DeleteNote(ctx context.Context, id string) error
}

// Attachments removes stored note files. *attachments.Manager implements it.
type Attachments interface {
	Delete(filenames ...string)
	CleanOrphans(referenced map[string]struct{}) ([]string, error)
}

// Entity names the kind of record an Event refers to
type Entity string

const (
	EntityTask        Entity = "task"
	EntityProject     Entity = "project"
	EntityRequirement Entity = "requirement"
	EntityNote        Entity = "note"
)

// Op is the kind of change an Event reports
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes one successful change, delivered via Subscribe.
type Event struct {
	Entity Entity
	Op     Op
	ID     string
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now for timestamps and overdue checks
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator used for new records
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithAttachments lets note deletion remove the note's files
func WithAttachments(a Attachments) Option {
	return func(s *Store) { s.files = a }
}

// Store is the single source of truth for the planner's data. Reads come
// from memory; writes update memory first, then storage. Storage failures
// are logged and never surface to callers.
type Store struct {
	mu  sync.RWMutex
	gw  Gateway
	ctx context.Context
	log *logger.Logger

	now   func() time.Time
	newID func() string
	files Attachments

	tasks        []model.Task
	projects     []model.Project
	requirements []model.Requirement
	notes        []model.Note

	// last position of each note in SortedNotes
	stableIndex map[string]int

	subscribers []chan Event
	pending     []Event
}

// New builds a Store and loads every collection from gw.
func New(gw Gateway, opts ...Option) *Store {
	s := &Store{
		gw:          gw,
		ctx:         context.Background(),
		log:         logger.WithFields(logger.F("component", "store")),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
		stableIndex: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	var err error

	if s.tasks, err = s.gw.FetchAllTasks(s.ctx); err != nil {
		s.log.Error("Failed to load tasks", logger.F("error", err.Error()))
		s.tasks = nil
	}
	if s.projects, err = s.gw.FetchAllProjects(s.ctx); err != nil {
		s.log.Error("Failed to load projects", logger.F("error", err.Error()))
		s.projects = nil
	}
	if s.requirements, err = s.gw.FetchAllRequirements(s.ctx); err != nil {
		s.log.Error("Failed to load requirements", logger.F("error", err.Error()))
		s.requirements = nil
	}
	if s.notes, err = s.gw.FetchAllNotes(s.ctx); err != nil {
		s.log.Error("Failed to load notes", logger.F("error", err.Error()))
		s.notes = nil
	}

	if len(s.projects) == 0 {
		p := model.DefaultProject()
		p.ID = s.newID()
		p.CreatedAt = s.now()
		s.projects = append(s.projects, p)
		s.check("save default project", s.gw.SaveProject(s.ctx, p))
	}

	s.log.Info("Store loaded",
		logger.F("tasks", len(s.tasks)),
		logger.F("projects", len(s.projects)),
		logger.F("requirements", len(s.requirements)),
		logger.F("notes", len(s.notes)))
}

// Subscribe returns a channel that receives an Event after every
// successful mutation. Events are dropped when the buffer is full.
func (s *Store) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 64)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *Store) emit(entity Entity, op Op, id string) {
	s.pending = append(s.pending, Event{Entity: entity, Op: op, ID: id})
}

// unlock releases the write lock and delivers the events queued while it
// was held.
func (s *Store) unlock() {
	events := s.pending
	s.pending = nil
	subscribers := s.subscribers
	s.mu.Unlock()

	for _, e := range events {
		for _, ch := range subscribers {
			select {
			case ch <- e:
			default:
			}
		}
	}
}

// check logs a storage failure. The in-memory state is kept either way.
func (s *Store) check(op string, err error) {
	if err != nil {
		s.log.Error("Storage write failed", logger.F("op", op), logger.F("error", err.Error()))
	}
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
