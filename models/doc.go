// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain types, enumerated value domains, and
request/response types for the API.

# Domain Types

Internal data structures mirroring the relational schema:

  - IncidentRow: joined list projection (public and admin lists)
  - IncidentDetail: joined single-incident projection
  - Suspect, Victim: people attached to an incident
  - Jurisdiction: float-keyed jurisdiction with integer display id
  - LawCategory, CrimeTypeOption: taxonomy reference data

# Enumerated Domains

Bounded value sets, with ValidX helpers used by every mutation path:

	Statuses:   Open, Closed
	Genders:    Female, Male
	AgeGroups:  <18, 18-24, 25-44, 45-64, 65+
	Injuries:   None, Minor, Severe, Fatal
	Severities: low, medium, high
	LawCats:    F, M, V

Race/ethnicity is deliberately free text and has no validator.

# Response Types

Types for JSON page rendering:

  - IncidentListResponse: rows + pagination state + page links
  - IncidentDetailResponse: incident + suspects + victims
  - NewIncidentFormResponse: creation form dropdowns (+ errors/form echo)
  - SystemResponse: taxonomy admin page (same-page success message)
  - AnalysisResponse: top-10 / demographic / yearly-trend sections
  - RecommendationsResponse: safest areas + optional area lookup
  - ValidationResponse: accumulated messages with input preserved
  - ErrorResponse: error, message

# Jurisdiction Identifiers

Jurisdiction ids are integer-valued but persisted as DOUBLE PRECISION.
Every equality lookup must use the stored float representation; DisplayID
carries the integer rendering for dropdowns and messages.
*/
package models
