// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Key for the admin API (optional, API disabled when empty)
  - LogFormat: auto, text or json (default: auto)
  - EnvFile: .env file to load (default: .env)

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-admin-key   Admin API key
	-log-format  Log format
	-env         Path to .env file
	-gen-admin-key  Print a random admin key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_KEY     → -admin-key
	LOG_FORMAT    → -log-format

CLI flags take precedence over environment variables. The .env file is
loaded with godotenv before the fallback and never overrides variables that
are already set. A missing .env file is not an error.
*/
package cliparse
