package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/existflow/daybook/internal/model"
)

const upsertProject = `
INSERT INTO projects (id, name, colorHex, createdAt)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    colorHex = excluded.colorHex,
    createdAt = excluded.createdAt`

// FetchAllProjects returns every project ordered by creation time
func (db *DB) FetchAllProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, colorHex, createdAt FROM projects ORDER BY createdAt`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var (
			p       model.Project
			created float64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.ColorHex, &created); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.CreatedAt = fromEpoch(created)
		if p.ColorHex == "" {
			p.ColorHex = model.DefaultProjectColor
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// SaveProject inserts or replaces a project
func (db *DB) SaveProject(ctx context.Context, p model.Project) error {
	return saveProject(ctx, db, p)
}

// SaveProjects writes a batch of projects in one transaction
func (db *DB) SaveProjects(ctx context.Context, projects []model.Project) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, p := range projects {
			if err := saveProject(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteProject removes a project by id. Tasks are not touched here.
func (db *DB) DeleteProject(ctx context.Context, id string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}

func saveProject(ctx context.Context, e execer, p model.Project) error {
	_, err := e.ExecContext(ctx, upsertProject, p.ID, p.Name, p.ColorHex, toEpoch(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save project %s: %w", p.ID, err)
	}
	return nil
}
