package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/existflow/daybook/internal/model"
)

const requirementColumns = `id, title, description, status, priority, projectId,
    relatedTaskIds, createdAt, updatedAt`

const upsertRequirement = `
INSERT INTO requirements (` + requirementColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    status = excluded.status,
    priority = excluded.priority,
    projectId = excluded.projectId,
    relatedTaskIds = excluded.relatedTaskIds,
    createdAt = excluded.createdAt,
    updatedAt = excluded.updatedAt`

// FetchAllRequirements returns every requirement, newest first
func (db *DB) FetchAllRequirements(ctx context.Context) ([]model.Requirement, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+requirementColumns+` FROM requirements ORDER BY createdAt DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements: %w", err)
	}
	defer rows.Close()

	var reqs []model.Requirement
	for rows.Next() {
		var (
			r                     model.Requirement
			status, priority, ids string
			projectID             sql.NullString
			created, updated      float64
		)
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &status, &priority,
			&projectID, &ids, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}

		if r.Status, err = model.ParseRequirementStatus(status); err != nil {
			r.Status = model.RequirementDeveloping
		}
		r.Priority = model.ParseRequirementPriority(priority)
		r.ProjectID = stringPtr(projectID)
		r.RelatedTaskIDs = decodeIDs(ids)
		r.CreatedAt = fromEpoch(created)
		r.UpdatedAt = fromEpoch(updated)
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

// SaveRequirement inserts or replaces a requirement
func (db *DB) SaveRequirement(ctx context.Context, r model.Requirement) error {
	return saveRequirement(ctx, db, r)
}

// SaveRequirements writes a batch of requirements in one transaction
func (db *DB) SaveRequirements(ctx context.Context, reqs []model.Requirement) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, r := range reqs {
			if err := saveRequirement(ctx, tx, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteRequirement removes a requirement by id
func (db *DB) DeleteRequirement(ctx context.Context, id string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM requirements WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete requirement %s: %w", id, err)
	}
	return nil
}

func saveRequirement(ctx context.Context, e execer, r model.Requirement) error {
	ids := r.RelatedTaskIDs
	if ids == nil {
		ids = []string{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode related tasks: %w", err)
	}

	_, err = e.ExecContext(ctx, upsertRequirement,
		r.ID, r.Title, r.Description, string(r.Status), string(r.Priority),
		nullString(r.ProjectID), string(encoded),
		toEpoch(r.CreatedAt), toEpoch(r.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save requirement %s: %w", r.ID, err)
	}
	return nil
}

// decodeIDs tolerates malformed values by returning an empty list
func decodeIDs(s string) []string {
	var ids []string
	if err := json.Unmarshal([]byte(s), &ids); err != nil || ids == nil {
		return []string{}
	}
	return ids
}
