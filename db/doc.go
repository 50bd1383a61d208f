// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and reference-data seeding.

# Schema Creation

CreateSchema initializes all required tables and seeds the fixed law
categories:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes, and ON CONFLICT DO NOTHING for the seed rows.

# Tables

The schema includes:

  - lawcategory: fixed F/M/V grouping of crime types (seeded)
  - jurisdiction: float-keyed administrative authority areas
  - address: deduplicated incident locations
  - crimetype: crime taxonomy, one law category each
  - incident: the core crime event record
  - classified_as: incident ↔ crime type link
  - suspect, victim: people attached to an incident
  - test: demo table for the POST /add example route

# Relationships

	lawcategory 1──* crimetype
	jurisdiction 1──* incident
	address 1──* incident
	incident 1──* classified_as *──1 crimetype
	incident 1──* suspect
	incident 1──* victim

Deleting an incident cascades to its classification, suspects, and
victims; that cascade is a contract of this schema (exercised by the
admin delete action) and is covered by tests, not an implicit
assumption.

# Constraints

  - incident.status CHECK (Open/Closed)
  - crimetype.severity CHECK (low/medium/high)
  - crimetype unique on (law_cat_id, lower(crime_type)) - duplicate
    detection is case-insensitive within a law category
  - jurisdiction.jur_id DOUBLE PRECISION - integer-valued ids are stored
    (and must be looked up) as floats
*/
package db
