// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the CrimeWatch server.

CrimeWatch is a crime incident browsing and administration service:
filtered, paginated incident lists, per-incident detail with admin
mutations, an incident creation workflow, taxonomy administration,
analytics reports, and demographic area recommendations.

# Starting the Server

The server requires a PostgreSQL connection string, from the
environment (a .env file is honored) or CLI flags:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 8111 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 8111)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (incidents, admin, analysis, recommendations)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, JSON helpers, redirect helpers
  - models: Domain and response types, enumerated value domains
  - filters: Composable SQL predicate builder shared by count and data queries
  - pagination: Page math and windowed page links
  - db: Schema creation and law category seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
