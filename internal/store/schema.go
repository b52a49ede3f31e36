// Package store provides SQLite-backed persistence for notes, tags,
// note-tag associations, profiles, and the backlink index, with optional
// FTS5 full-text search.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	subtitle   TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL DEFAULT 'text',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_owner_created ON notes(owner_id, created_at);

CREATE TABLE IF NOT EXISTS tags (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS note_tags (
	note_id TEXT NOT NULL,
	tag_id  TEXT NOT NULL,
	UNIQUE(note_id, tag_id)
);

CREATE TABLE IF NOT EXISTS links (
	source_id    TEXT NOT NULL,
	target_title TEXT NOT NULL COLLATE NOCASE,
	UNIQUE(source_id, target_title)
);

CREATE INDEX IF NOT EXISTS idx_links_target ON links(target_title);

CREATE TABLE IF NOT EXISTS profiles (
	owner_id     TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	updated_at   DATETIME NOT NULL
);
`

// DB wraps a sql.DB with store-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
