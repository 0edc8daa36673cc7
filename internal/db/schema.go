package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Prices are integer cents; the
// ON DELETE CASCADE on items makes user deletion remove owned items at
// the storage level.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         INTEGER PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    last_name  TEXT NOT NULL,
    first_name TEXT NOT NULL,
    is_active  INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id           INTEGER PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT,
    price        INTEGER NOT NULL DEFAULT 0 CHECK (price >= 0),
    is_available INTEGER NOT NULL DEFAULT 1,
    owner_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
// Safe to run on every startup.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
