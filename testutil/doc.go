// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared helpers for handler tests: database
// setup against a local PostgreSQL instance, row seeding, and request
// and response assertions.
package testutil
