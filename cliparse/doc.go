// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8111)
  - DatabaseURL: PostgreSQL connection string (required)

# CLI Flags

	-p  Server port
	-d  Database URL

# Environment Variables

Flags fall back to environment variables:

	PORT         → -p
	DATABASE_URL → -d

A .env file in the working directory is loaded into the environment
first (development convenience; its absence is not an error). CLI flags
take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL is missing or PORT is not
numeric.
*/
package cliparse
