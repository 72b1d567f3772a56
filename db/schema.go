// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema brings the store to the expected shape, idempotently.
// Safe to call on every process start, including when several instances
// race to bootstrap: every statement carries an existence check and the
// store makes those checks atomic. Runs in one transaction so a partial
// bootstrap never survives; on error the caller must refuse to serve.
func CreateSchema(conn *sql.DB, dbType string) error {
	schema := postgresSchema
	if dbType == "sqlite" {
		schema = sqliteSchema
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin bootstrap transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Columns added after the tables first shipped. Existing deployments
	// get them via add-column-if-absent; fresh ones hit the no-op path.
	for _, m := range migrations {
		def := m.postgresDef
		if dbType == "sqlite" {
			def = m.sqliteDef
		}
		if err := ensureColumn(tx, dbType, m.table, m.column, def); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bootstrap transaction: %w", err)
	}

	return nil
}

type columnMigration struct {
	table       string
	column      string
	postgresDef string
	sqliteDef   string
}

var migrations = []columnMigration{
	{"pins", "rich_text", "JSONB", "TEXT"},
	{"boards", "is_private", "BOOLEAN NOT NULL DEFAULT FALSE", "INTEGER NOT NULL DEFAULT 0"},
}

// ensureColumn adds a column if it is not already present. Postgres has
// ADD COLUMN IF NOT EXISTS; sqlite needs a pragma probe first.
func ensureColumn(tx *sql.Tx, dbType, table, column, def string) error {
	if dbType != "sqlite" {
		_, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", table, column, def))
		if err != nil {
			return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
		}
		return nil
	}

	var count int
	err := tx.QueryRow("SELECT COUNT(*) FROM pragma_table_info($1) WHERE name = $2", table, column).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to probe column %s.%s: %w", table, column, err)
	}
	if count > 0 {
		return nil
	}
	if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, def)); err != nil {
		return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	return nil
}

const postgresSchema = `
-- Pins
CREATE TABLE IF NOT EXISTS pins (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    image_url TEXT,
    username TEXT NOT NULL,
    view_count INTEGER NOT NULL DEFAULT 0,
    like_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_pins_username ON pins(username);
CREATE INDEX IF NOT EXISTS idx_pins_created_at ON pins(created_at DESC);

-- Secondary images, one pin owns many
CREATE TABLE IF NOT EXISTS pin_images (
    id SERIAL PRIMARY KEY,
    pin_id INTEGER NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
    image_url TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_pin_images_pin_id ON pin_images(pin_id);

-- Likes
CREATE TABLE IF NOT EXISTS likes (
    id SERIAL PRIMARY KEY,
    pin_id INTEGER NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
    username TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (pin_id, username)
);

CREATE INDEX IF NOT EXISTS idx_likes_pin_id ON likes(pin_id);
CREATE INDEX IF NOT EXISTS idx_likes_username ON likes(username);

-- Followers
CREATE TABLE IF NOT EXISTS followers (
    id SERIAL PRIMARY KEY,
    follower_username TEXT NOT NULL,
    following_username TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (follower_username, following_username)
);

CREATE INDEX IF NOT EXISTS idx_followers_follower ON followers(follower_username);
CREATE INDEX IF NOT EXISTS idx_followers_following ON followers(following_username);

-- Boards
CREATE TABLE IF NOT EXISTS boards (
    id SERIAL PRIMARY KEY,
    username TEXT NOT NULL,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_boards_username ON boards(username);

-- Saved pins (board membership)
CREATE TABLE IF NOT EXISTS saved_pins (
    id SERIAL PRIMARY KEY,
    board_id INTEGER NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
    pin_id INTEGER NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
    saved_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (board_id, pin_id)
);

CREATE INDEX IF NOT EXISTS idx_saved_pins_board_id ON saved_pins(board_id);
CREATE INDEX IF NOT EXISTS idx_saved_pins_pin_id ON saved_pins(pin_id);

-- Comments
CREATE TABLE IF NOT EXISTS comments (
    id SERIAL PRIMARY KEY,
    pin_id INTEGER NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
    username TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_comments_pin_id ON comments(pin_id);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS pins (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    image_url TEXT,
    username TEXT NOT NULL,
    view_count INTEGER NOT NULL DEFAULT 0,
    like_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pins_username ON pins(username);
CREATE INDEX IF NOT EXISTS idx_pins_created_at ON pins(created_at DESC);

CREATE TABLE IF NOT EXISTS pin_images (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pin_id INTEGER NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
    image_url TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_pin_images_pin_id ON pin_images(pin_id);

CREATE TABLE IF NOT EXISTS likes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pin_id INTEGER NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
    username TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (pin_id, username)
);

CREATE INDEX IF NOT EXISTS idx_likes_pin_id ON likes(pin_id);
CREATE INDEX IF NOT EXISTS idx_likes_username ON likes(username);

CREATE TABLE IF NOT EXISTS followers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    follower_username TEXT NOT NULL,
    following_username TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (follower_username, following_username)
);

CREATE INDEX IF NOT EXISTS idx_followers_follower ON followers(follower_username);
CREATE INDEX IF NOT EXISTS idx_followers_following ON followers(following_username);

CREATE TABLE IF NOT EXISTS boards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_boards_username ON boards(username);

CREATE TABLE IF NOT EXISTS saved_pins (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    board_id INTEGER NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
    pin_id INTEGER NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
    saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (board_id, pin_id)
);

CREATE INDEX IF NOT EXISTS idx_saved_pins_board_id ON saved_pins(board_id);
CREATE INDEX IF NOT EXISTS idx_saved_pins_pin_id ON saved_pins(pin_id);

CREATE TABLE IF NOT EXISTS comments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pin_id INTEGER NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
    username TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_comments_pin_id ON comments(pin_id);
`
