// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Boardify API server.

Boardify is a visual pin-sharing service: users publish pins with one or
more images, collect them onto boards, and follow each other to build a
personalized feed.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 5000 -d "postgres://..." -t postgres

A local SQLite file works too:

	go run main.go -d boardify.db -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string or SQLite file path
  - DATABASE_TYPE (-t): "postgres" or "sqlite" (default: postgres)

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS: connection pool sizing
  - DB_CONN_IDLE_TIMEOUT, DB_CONN_LIFETIME: connection recycling
  - REQUEST_TIMEOUT: per-request deadline

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (pins, likes, comments, follows, boards, feed, users)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - db: Connection setup, schema bootstrap, driver error classification
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
