package db

import "fmt"

// migrate runs all database migrations
func (db *DB) migrate() error {
	migrations := []string{
		migrationCreateTasks,
		migrationCreateProjects,
		migrationCreateRequirements,
		migrationCreateNotes,
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	// Columns added after the first release. Databases created before them
	// get the column added in place.
	columns := []struct {
		table, column, definition string
	}{
		{"tasks", "requirementId", "TEXT"},
		{"tasks", "estimatedHours", "REAL NOT NULL DEFAULT 1.0"},
		{"notes", "richContent", "BLOB"},
		{"notes", "isPinned", "INTEGER NOT NULL DEFAULT 0"},
	}
	for _, c := range columns {
		if err := db.addColumnIfMissing(c.table, c.column, c.definition); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.table, c.column, err)
		}
	}

	return nil
}

// hasColumn reports whether table already has column
func (db *DB) hasColumn(table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name, typ string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func (db *DB) addColumnIfMissing(table, column, definition string) error {
	ok, err := db.hasColumn(table, column)
	if err != nil || ok {
		return err
	}
	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

const migrationCreateTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    startDate REAL NOT NULL,
    endDate REAL NOT NULL,
    status TEXT NOT NULL,
    priority TEXT NOT NULL,
    projectId TEXT,
    requirementId TEXT,
    notes TEXT NOT NULL DEFAULT '',
    estimatedHours REAL NOT NULL DEFAULT 1.0,
    createdAt REAL NOT NULL,
    updatedAt REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(projectId);
`

const migrationCreateProjects = `
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    colorHex TEXT NOT NULL,
    createdAt REAL NOT NULL
);
`

const migrationCreateRequirements = `
CREATE TABLE IF NOT EXISTS requirements (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    priority TEXT NOT NULL,
    projectId TEXT,
    relatedTaskIds TEXT NOT NULL DEFAULT '[]',
    createdAt REAL NOT NULL,
    updatedAt REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_requirements_status ON requirements(status);
`

const migrationCreateNotes = `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    richContent BLOB,
    isPinned INTEGER NOT NULL DEFAULT 0,
    createdAt REAL NOT NULL,
    updatedAt REAL NOT NULL
);
`
