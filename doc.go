// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the polls server.

Polls is a small voting site: visitors see the latest questions, open one,
pick a choice and look at the results.

# Starting the Server

The server reads flags, environment variables and an optional .env file:

	DATABASE_URL=file:polls.db go run .

Or with flags:

	go run . -p 8000 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_KEY (-admin-key): enables the admin API used to seed questions
  - LOG_FORMAT (-log-format): auto, text or json

Generate an admin key with:

	go run . -gen-admin-key

# Architecture

  - handlers: page, vote and admin handlers
  - views: embedded HTML templates
  - router: route definitions using Go 1.22+ routing
  - middleware: logging, request IDs, JSON helpers
  - models: domain and page types
  - auth: admin key validation
  - db: connection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
