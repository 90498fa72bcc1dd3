package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/existflow/daybook/internal/model"
)

const taskColumns = `id, title, startDate, endDate, status, priority, projectId,
    requirementId, notes, estimatedHours, createdAt, updatedAt`

const upsertTask = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    startDate = excluded.startDate,
    endDate = excluded.endDate,
    status = excluded.status,
    priority = excluded.priority,
    projectId = excluded.projectId,
    requirementId = excluded.requirementId,
    notes = excluded.notes,
    estimatedHours = excluded.estimatedHours,
    createdAt = excluded.createdAt,
    updatedAt = excluded.updatedAt`

// FetchAllTasks returns every stored task ordered by start date
func (db *DB) FetchAllTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY startDate`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SaveTask inserts or replaces a task
func (db *DB) SaveTask(ctx context.Context, t model.Task) error {
	return saveTask(ctx, db, t)
}

// SaveTasks writes a batch of tasks in one transaction
func (db *DB) SaveTasks(ctx context.Context, tasks []model.Task) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, t := range tasks {
			if err := saveTask(ctx, tx, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteTask removes a task by id
func (db *DB) DeleteTask(ctx context.Context, id string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

func saveTask(ctx context.Context, e execer, t model.Task) error {
	_, err := e.ExecContext(ctx, upsertTask,
		t.ID, t.Title, toEpoch(t.StartDate), toEpoch(t.EndDate),
		string(t.Status), string(t.Priority),
		nullString(t.ProjectID), nullString(t.RequirementID),
		t.Notes, t.EstimatedHours,
		toEpoch(t.CreatedAt), toEpoch(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save task %s: %w", t.ID, err)
	}
	return nil
}

func scanTask(s scanner) (model.Task, error) {
	var (
		t                            model.Task
		start, end, created, updated float64
		status, priority             string
		projectID, requirementID     sql.NullString
	)
	err := s.Scan(&t.ID, &t.Title, &start, &end, &status, &priority,
		&projectID, &requirementID, &t.Notes, &t.EstimatedHours, &created, &updated)
	if err != nil {
		return t, fmt.Errorf("failed to scan task: %w", err)
	}

	t.StartDate = fromEpoch(start)
	t.EndDate = fromEpoch(end)
	t.Status = model.ParseTaskStatus(status)
	t.Priority = model.ParseTaskPriority(priority)
	t.ProjectID = stringPtr(projectID)
	t.RequirementID = stringPtr(requirementID)
	t.CreatedAt = fromEpoch(created)
	t.UpdatedAt = fromEpoch(updated)
	return t, nil
}
