package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/existflow/daybook/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "daybook.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sameInstant(a, b time.Time) bool {
	d := a.Sub(b)
	return d < time.Millisecond && d > -time.Millisecond
}

func strPtr(s string) *string { return &s }

func TestTaskRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.Local)
	task := model.NewTask("Write report", start, start.Add(48*time.Hour))
	task.EstimatedHours = 12
	task.Priority = model.PriorityHigh
	task.Status = model.StatusInProgress
	task.ProjectID = strPtr("p1")
	task.Notes = "draft first"

	if err := db.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	got, err := db.FetchAllTasks(ctx)
	if err != nil {
		t.Fatalf("FetchAllTasks: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tasks, want 1", len(got))
	}
	g := got[0]
	if g.ID != task.ID || g.Title != task.Title || g.EstimatedHours != 12 ||
		g.Priority != model.PriorityHigh || g.Status != model.StatusInProgress ||
		g.Notes != "draft first" {
		t.Errorf("fields not preserved: %+v", g)
	}
	if g.ProjectID == nil || *g.ProjectID != "p1" || g.RequirementID != nil {
		t.Errorf("optional ids not preserved: %v %v", g.ProjectID, g.RequirementID)
	}
	if !sameInstant(g.StartDate, task.StartDate) || !sameInstant(g.EndDate, task.EndDate) {
		t.Errorf("dates drifted: %v..%v", g.StartDate, g.EndDate)
	}
}

func TestSaveTaskUpserts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	task := model.NewTask("Old", time.Now(), time.Now())
	if err := db.SaveTask(ctx, task); err != nil {
		t.Fatal(err)
	}
	task.Title = "New"
	if err := db.SaveTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	got, _ := db.FetchAllTasks(ctx)
	if len(got) != 1 || got[0].Title != "New" {
		t.Errorf("expected single updated row, got %+v", got)
	}

	if err := db.DeleteTask(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = db.FetchAllTasks(ctx)
	if len(got) != 0 {
		t.Errorf("task not deleted")
	}
}

func TestUnknownEnumsFallBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO tasks (id, title, startDate, endDate, status, priority,
    createdAt, updatedAt) VALUES ('t1', 'x', 0, 0, 'paused', 'urgent', 0, 0)`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`INSERT INTO requirements (id, title, status, priority, relatedTaskIds,
    createdAt, updatedAt) VALUES ('r1', 'y', 'archived', 'P9', 'not json', 0, 0)`)
	if err != nil {
		t.Fatal(err)
	}

	tasks, err := db.FetchAllTasks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if tasks[0].Status != model.StatusNotStarted || tasks[0].Priority != model.PriorityMedium {
		t.Errorf("task enums = %s/%s", tasks[0].Status, tasks[0].Priority)
	}
	if tasks[0].EstimatedHours != 1.0 {
		t.Errorf("estimatedHours default = %v, want 1.0", tasks[0].EstimatedHours)
	}

	reqs, err := db.FetchAllRequirements(ctx)
	if err != nil {
		t.Fatal(err)
	}
	r := reqs[0]
	if r.Status != model.RequirementDeveloping || r.Priority != model.RequirementP2 {
		t.Errorf("requirement enums = %s/%s", r.Status, r.Priority)
	}
	if r.RelatedTaskIDs == nil || len(r.RelatedTaskIDs) != 0 {
		t.Errorf("related ids = %v, want empty", r.RelatedTaskIDs)
	}
}

func TestRequirementRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	older := model.NewRequirement("Login", "OAuth flow")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := model.NewRequirement("Export", "")
	newer.Status = model.RequirementTesting
	newer.Priority = model.RequirementP0
	newer.RelatedTaskIDs = []string{"a", "b"}

	if err := db.SaveRequirements(ctx, []model.Requirement{older, newer}); err != nil {
		t.Fatalf("SaveRequirements: %v", err)
	}

	got, err := db.FetchAllRequirements(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %+v", got)
	}
	if got[0].Status != model.RequirementTesting || got[0].Priority != model.RequirementP0 {
		t.Errorf("enums not preserved")
	}
	if len(got[0].RelatedTaskIDs) != 2 || got[0].RelatedTaskIDs[1] != "b" {
		t.Errorf("related ids = %v", got[0].RelatedTaskIDs)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := model.NewProject("Home", "#FF6B6B")
	if err := db.SaveProject(ctx, p); err != nil {
		t.Fatal(err)
	}
	got, err := db.FetchAllProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Home" || got[0].ColorHex != "#FF6B6B" {
		t.Errorf("got %+v", got)
	}
	if err := db.DeleteProject(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = db.FetchAllProjects(ctx)
	if len(got) != 0 {
		t.Errorf("project not deleted")
	}
}

func TestNoteRichContentRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	n := model.NewNote("Ideas")
	n.Markup = "**bold** idea\n\n![shot](abc.png)"
	n.Content = "bold idea"
	n.Attachments = []model.Attachment{{Filename: "abc.png", Size: 10}}
	n.IsPinned = true

	if err := db.SaveNote(ctx, n); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	got, err := db.FetchAllNotes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	g := got[0]
	if g.Markup != n.Markup || g.Content != n.Content || !g.IsPinned {
		t.Errorf("note fields lost: %+v", g)
	}
	if len(g.Attachments) != 1 || g.Attachments[0].Filename != "abc.png" {
		t.Errorf("attachments lost: %+v", g.Attachments)
	}
}

func TestMigrateLegacyNotesTable(t *testing.T) {
	// Given: a database written before notes had pin state or rich content
	path := filepath.Join(t.TempDir(), "legacy.sqlite")
	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = raw.Exec(`
CREATE TABLE notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    createdAt REAL NOT NULL,
    updatedAt REAL NOT NULL
);
CREATE TABLE tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    startDate REAL NOT NULL,
    endDate REAL NOT NULL,
    status TEXT NOT NULL,
    priority TEXT NOT NULL,
    projectId TEXT,
    notes TEXT NOT NULL DEFAULT '',
    createdAt REAL NOT NULL,
    updatedAt REAL NOT NULL
);
INSERT INTO notes (id, title, content, createdAt, updatedAt)
VALUES ('n1', 'Old', 'plain body', 1700000000, 1700000000);
INSERT INTO tasks (id, title, startDate, endDate, status, priority, createdAt, updatedAt)
VALUES ('t1', 'Legacy', 1700000000, 1700000000, 'completed', 'low', 1700000000, 1700000000);
`)
	if err != nil {
		t.Fatal(err)
	}
	raw.Close()

	// When: the database is opened
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open legacy db: %v", err)
	}
	defer db.Close()

	// Then: rows survive with defaults for the new columns
	notes, err := db.FetchAllNotes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Content != "plain body" || notes[0].IsPinned {
		t.Errorf("legacy note = %+v", notes)
	}
	if notes[0].Markup != "" {
		t.Errorf("legacy note should stay plain text, got markup %q", notes[0].Markup)
	}

	tasks, err := db.FetchAllTasks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].RequirementID != nil || tasks[0].Status != model.StatusCompleted {
		t.Errorf("legacy task = %+v", tasks)
	}

	// And: opening again is a no-op
	db.Close()
	again, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	again.Close()
}
