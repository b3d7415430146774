package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	Path string
}

const schema = `
CREATE TABLE IF NOT EXISTS cards (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	kind             TEXT NOT NULL DEFAULT 'card',
	pos_x            REAL NOT NULL DEFAULT 0,
	pos_y            REAL NOT NULL DEFAULT 0,
	pos_z            REAL NOT NULL DEFAULT 0,
	zoom_offset_x    REAL NOT NULL DEFAULT 0,
	zoom_offset_y    REAL NOT NULL DEFAULT 0,
	zoom_size        REAL,
	costs_budget     INTEGER NOT NULL DEFAULT 1,
	initially_open   INTEGER NOT NULL DEFAULT 0,
	interaction      TEXT NOT NULL DEFAULT 'active',
	special_rotation INTEGER NOT NULL DEFAULT 0,
	reserve          INTEGER NOT NULL DEFAULT 0,
	sort_order       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS deps (
	source_id TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
	target_id TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
	type      TEXT NOT NULL CHECK (type IN ('hide', 'open', 'activator')),
	PRIMARY KEY (source_id, target_id, type)
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// OpenDB opens a SQLite database with WAL mode and foreign keys enabled
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// PRAGMAs are per connection
	conn.SetMaxOpenConns(1)

	// Enable WAL mode for concurrent reads
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return &DB{conn: conn, Path: path}, nil
}

// Migrate creates the board tables if they do not exist
func (d *DB) Migrate() error {
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}
