package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/existflow/daybook/internal/logger"
	"github.com/existflow/daybook/internal/model"
	"github.com/existflow/daybook/internal/richtext"
)

const upsertNote = `
INSERT INTO notes (id, title, content, richContent, isPinned, createdAt, updatedAt)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    content = excluded.content,
    richContent = excluded.richContent,
    isPinned = excluded.isPinned,
    createdAt = excluded.createdAt,
    updatedAt = excluded.updatedAt`

// FetchAllNotes returns every note, most recently updated first
func (db *DB) FetchAllNotes(ctx context.Context) ([]model.Note, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, title, content, richContent, isPinned,
    createdAt, updatedAt FROM notes ORDER BY updatedAt DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var (
			n                model.Note
			rich             []byte
			pinned           int
			created, updated float64
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &rich, &pinned,
			&created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		n.IsPinned = pinned != 0
		n.CreatedAt = fromEpoch(created)
		n.UpdatedAt = fromEpoch(updated)

		doc, err := richtext.DecodeBlob(rich)
		if err != nil {
			logger.Warn("Unreadable note content, using plain text",
				logger.F("note_id", n.ID), logger.F("error", err.Error()))
			doc = richtext.Document{}
		}
		n.Markup = doc.Markup
		n.Attachments = doc.Attachments
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// SaveNote inserts or replaces a note
func (db *DB) SaveNote(ctx context.Context, n model.Note) error {
	return saveNote(ctx, db, n)
}

// SaveNotes writes a batch of notes in one transaction
func (db *DB) SaveNotes(ctx context.Context, notes []model.Note) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, n := range notes {
			if err := saveNote(ctx, tx, n); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteNote removes a note by id
func (db *DB) DeleteNote(ctx context.Context, id string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return nil
}

func saveNote(ctx context.Context, e execer, n model.Note) error {
	rich, err := richtext.EncodeBlob(richtext.Document{
		Markup:      n.Markup,
		Attachments: n.Attachments,
	})
	if err != nil {
		return fmt.Errorf("failed to encode note %s: %w", n.ID, err)
	}

	pinned := 0
	if n.IsPinned {
		pinned = 1
	}
	_, err = e.ExecContext(ctx, upsertNote,
		n.ID, n.Title, n.Content, rich, pinned,
		toEpoch(n.CreatedAt), toEpoch(n.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save note %s: %w", n.ID, err)
	}
	return nil
}
