// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Mohdjey123/Boardify/cliparse"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured store and applies pool limits.
// The caller owns the returned handle and must Close it on shutdown.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver, dsn := driverDSN(cfg)

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}

	if cfg.DatabaseType == "sqlite" {
		// A single connection sidesteps SQLITE_BUSY under concurrent
		// writers and keeps in-memory databases alive.
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	} else {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
		conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DatabaseType, err)
	}

	return conn, nil
}

// driverDSN maps the configured type to a registered driver name and a
// data source string. The sqlite DSN gets WAL, a busy timeout, and
// foreign key enforcement; without the last one the ON DELETE CASCADE
// clauses in the schema are silently ignored.
func driverDSN(cfg cliparse.Config) (driver, dsn string) {
	if cfg.DatabaseType != "sqlite" {
		return "postgres", cfg.DatabaseURL
	}

	dsn = cfg.DatabaseURL
	if dsn == ":memory:" {
		dsn = "file::memory:"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	return "sqlite", dsn
}
