// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open selects the driver from the database type and pings it:

	conn, err := db.Open(ctx, db.TypeSQLite, "file:polls.db")

SQLite (modernc.org/sqlite) is the default and runs without cgo.
Postgres uses github.com/lib/pq.

# Schema Creation

	if err := db.CreateSchema(ctx, conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - question: prompt text and publication date
  - choice: answers with their vote counts

# Relationships

	question 1──* choice

choice.question_id uses ON DELETE CASCADE. SQLite connections are opened
with foreign_keys enabled so the cascade applies there too.
*/
package db
