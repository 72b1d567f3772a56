// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and driver
error classification.

# Opening a Connection

Open builds a *sql.DB from the parsed configuration and verifies it
with a ping:

	conn, err := db.Open(cfg)

Both PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite) are supported.
SQLite connections get foreign keys, WAL journaling, and a busy timeout
via DSN pragmas, and the pool is pinned to a single connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes, and adds columns introduced after the initial schema via
idempotent migrations.

# Tables

The schema includes:

  - pins: Pin metadata, primary image, and denormalized counters
  - pin_images: Ordered secondary images per pin
  - likes: One like per user per pin
  - followers: Directed follow edges between usernames
  - boards: User-owned collections
  - saved_pins: Links pins to boards
  - comments: Comments on pins

# Relationships

	pins 1──* pin_images
	pins 1──* likes
	pins 1──* comments
	boards 1──* saved_pins
	pins 1──* saved_pins

All foreign keys use ON DELETE CASCADE, so deleting a pin removes its
images, likes, comments, and board placements in one statement.

# Error Classification

IsUniqueViolation and IsForeignKeyViolation recognize constraint errors
from either driver, so handlers can map them to HTTP statuses without
driver-specific code.
*/
package db
