// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first if present.

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: Connection string or SQLite file path (required)
  - DatabaseType: "sqlite" or "postgres" (default: postgres)
  - MaxOpenConns, MaxIdleConns: connection pool sizing
  - ConnMaxIdleTime, ConnMaxLifetime: connection recycling
  - RequestTimeout: per-request deadline

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type (sqlite or postgres)
	-max-conns         Max open database connections
	-idle-conns        Max idle database connections
	-conn-idle-timeout Idle connection timeout
	-conn-lifetime     Max connection lifetime
	-request-timeout   Per-request deadline

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	DB_MAX_OPEN_CONNS    → -max-conns
	DB_MAX_IDLE_CONNS    → -idle-conns
	DB_CONN_IDLE_TIMEOUT → -conn-idle-timeout
	DB_CONN_LIFETIME     → -conn-lifetime
	REQUEST_TIMEOUT      → -request-timeout

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
