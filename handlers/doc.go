// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers implements the HTTP handlers for incident browsing,
// incident administration, taxonomy administration, analytics, and the
// demographic area recommendations. Handlers hold a *sql.DB and build
// their queries through the filters package so that paired count and
// data queries always agree.
package handlers
