// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application and seeds
// the fixed law categories. Safe to call multiple times - uses
// IF NOT EXISTS and ON CONFLICT DO NOTHING.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec(seedLawCategories); err != nil {
		return fmt.Errorf("failed to seed law categories: %w", err)
	}

	return nil
}

const schema = `
-- Law categories (fixed set: felony / misdemeanor / violation)
CREATE TABLE IF NOT EXISTS lawcategory (
    law_cat_id TEXT PRIMARY KEY CHECK (law_cat_id IN ('F', 'M', 'V')),
    category TEXT NOT NULL
);

-- Jurisdictions. The id is integer-valued but stored as floating point;
-- lookups must use the float representation to match existing rows.
CREATE TABLE IF NOT EXISTS jurisdiction (
    jur_id DOUBLE PRECISION PRIMARY KEY,
    description TEXT NOT NULL
);

-- Addresses, deduplicated by exact match on all four fields before insert
CREATE TABLE IF NOT EXISTS address (
    address_id SERIAL PRIMARY KEY,
    borough TEXT NOT NULL,
    postal_code TEXT NOT NULL,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_address_lookup ON address(borough, postal_code, latitude, longitude);

-- Crime types, unique per law category (case-insensitively)
CREATE TABLE IF NOT EXISTS crimetype (
    crime_type_id SERIAL PRIMARY KEY,
    law_cat_id TEXT NOT NULL REFERENCES lawcategory(law_cat_id),
    crime_type TEXT NOT NULL,
    severity TEXT NOT NULL CHECK (severity IN ('low', 'medium', 'high'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_crimetype_name_per_cat ON crimetype(law_cat_id, lower(crime_type));

-- Incidents
CREATE TABLE IF NOT EXISTS incident (
    incident_id SERIAL PRIMARY KEY,
    jur_id DOUBLE PRECISION NOT NULL REFERENCES jurisdiction(jur_id),
    address_id INTEGER NOT NULL REFERENCES address(address_id),
    occurred_date DATE NOT NULL,
    status TEXT NOT NULL DEFAULT 'Open' CHECK (status IN ('Open', 'Closed')),
    incident_details TEXT
);

CREATE INDEX IF NOT EXISTS idx_incident_occurred_date ON incident(occurred_date DESC);
CREATE INDEX IF NOT EXISTS idx_incident_address ON incident(address_id);
CREATE INDEX IF NOT EXISTS idx_incident_jur ON incident(jur_id);

-- Classification link (in practice exactly one crime type per incident)
CREATE TABLE IF NOT EXISTS classified_as (
    incident_id INTEGER NOT NULL REFERENCES incident(incident_id) ON DELETE CASCADE,
    crime_type_id INTEGER NOT NULL REFERENCES crimetype(crime_type_id),
    PRIMARY KEY (incident_id, crime_type_id)
);

CREATE INDEX IF NOT EXISTS idx_classified_as_crime_type ON classified_as(crime_type_id);

-- Suspects
CREATE TABLE IF NOT EXISTS suspect (
    suspect_id SERIAL PRIMARY KEY,
    incident_id INTEGER NOT NULL REFERENCES incident(incident_id) ON DELETE CASCADE,
    gender TEXT NOT NULL,
    race TEXT,
    age_grp TEXT NOT NULL,
    arrest_status BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_suspect_incident ON suspect(incident_id);

-- Victims
CREATE TABLE IF NOT EXISTS victim (
    victim_id SERIAL PRIMARY KEY,
    incident_id INTEGER NOT NULL REFERENCES incident(incident_id) ON DELETE CASCADE,
    gender TEXT NOT NULL,
    race TEXT,
    injury_severity TEXT,
    age_grp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_victim_incident ON victim(incident_id);
CREATE INDEX IF NOT EXISTS idx_victim_demographics ON victim(gender, age_grp);

-- Demo table kept for the POST /add example route; not part of the
-- domain model.
CREATE TABLE IF NOT EXISTS test (
    id SERIAL PRIMARY KEY,
    name TEXT
);
`

const seedLawCategories = `
INSERT INTO lawcategory (law_cat_id, category) VALUES
    ('F', 'Felony'),
    ('M', 'Misdemeanor'),
    ('V', 'Violation')
ON CONFLICT (law_cat_id) DO NOTHING;
`
