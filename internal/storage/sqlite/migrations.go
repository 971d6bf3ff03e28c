package sqlite

import "database/sql"

// schema is applied on startup; every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS presets (
    id TEXT PRIMARY KEY,
    label TEXT NOT NULL,
    percent REAL NOT NULL UNIQUE,
    position INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_presets_position ON presets(position);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
