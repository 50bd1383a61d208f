// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Incident status constants
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// Law category identifiers (fixed set, seeded at schema creation)
const (
	LawCatFelony      = "F"
	LawCatMisdemeanor = "M"
	LawCatViolation   = "V"
)

// Crime type severity constants
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Risk buckets for the single-area recommendation lookup
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
)

// Enumerated demographic domains. Form values must match exactly.
var (
	Genders          = []string{"Female", "Male"}
	AgeGroups        = []string{"<18", "18-24", "25-44", "45-64", "65+"}
	InjurySeverities = []string{"None", "Minor", "Severe", "Fatal"}
	Severities       = []string{SeverityLow, SeverityMedium, SeverityHigh}
	LawCategories    = []string{LawCatFelony, LawCatMisdemeanor, LawCatViolation}
)

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is an allowed incident status.
func ValidStatus(s string) bool { return s == StatusOpen || s == StatusClosed }

// ValidGender reports whether g is an allowed gender value.
func ValidGender(g string) bool { return contains(Genders, g) }

// ValidAgeGroup reports whether a is an allowed age group.
func ValidAgeGroup(a string) bool { return contains(AgeGroups, a) }

// ValidInjurySeverity reports whether v is an allowed injury severity.
func ValidInjurySeverity(v string) bool { return contains(InjurySeverities, v) }

// ValidSeverity reports whether s is an allowed crime type severity.
func ValidSeverity(s string) bool { return contains(Severities, s) }

// ValidLawCategory reports whether id is one of the seeded law categories.
func ValidLawCategory(id string) bool { return contains(LawCategories, id) }

// Domain types

// IncidentRow is the list projection shared by the public and admin
// incident lists. IncidentID is only populated (and serialized) for the
// admin variant, which links through to the detail page.
type IncidentRow struct {
	IncidentID   int64  `json:"incident_id,omitempty"`
	OccurredDate string `json:"occurred_date"`
	CrimeType    string `json:"crime_type"`
	Category     string `json:"category"`
	Severity     string `json:"severity"`
	Status       string `json:"status"`
	Jurisdiction string `json:"jurisdiction"`
	Borough      string `json:"borough"`
	PostalCode   string `json:"postal_code"`
}

// IncidentDetail is the joined single-incident projection.
type IncidentDetail struct {
	IncidentID   int64   `json:"incident_id"`
	OccurredDate string  `json:"occurred_date"`
	Status       string  `json:"status"`
	Description  *string `json:"description"`
	CrimeType    string  `json:"crime_type"`
	Category     string  `json:"category"`
	Severity     string  `json:"severity"`
	Jurisdiction string  `json:"jurisdiction"`
	Borough      string  `json:"borough"`
	PostalCode   string  `json:"postal_code"`
}

type Suspect struct {
	SuspectID    int64   `json:"suspect_id"`
	Gender       string  `json:"gender"`
	Race         *string `json:"race"`
	AgeGrp       string  `json:"age_grp"`
	ArrestStatus bool    `json:"arrest_status"`
}

type Victim struct {
	VictimID       int64   `json:"victim_id"`
	Gender         string  `json:"gender"`
	Race           *string `json:"race"`
	InjurySeverity *string `json:"injury_severity"`
	AgeGrp         string  `json:"age_grp"`
}

// Jurisdiction identifiers are persisted as floating point; DisplayID is
// the integer rendering used in dropdowns and messages.
type Jurisdiction struct {
	JurID       float64 `json:"jur_id"`
	DisplayID   int64   `json:"display_id"`
	Description string  `json:"description"`
}

type LawCategory struct {
	LawCatID string `json:"law_cat_id"`
	Category string `json:"category"`
}

// CrimeTypeOption feeds the crime type dropdown on the creation form.
type CrimeTypeOption struct {
	CrimeTypeID int64  `json:"crime_type_id"`
	CrimeType   string `json:"crime_type"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
}

// Analytics types

type CrimeTypeCount struct {
	CrimeType     string `json:"crime_type"`
	IncidentCount int64  `json:"incident_count"`
}

type TrendPoint struct {
	Year          int64 `json:"year"`
	IncidentCount int64 `json:"incident_count"`
}

// AreaSafety is one (postal_code, borough) row of the demographic
// match-rate report. Lower DemoPct reads as "safer for this demographic".
type AreaSafety struct {
	PostalCode     string  `json:"postal_code"`
	Borough        string  `json:"borough"`
	TotalIncidents int64   `json:"total_incidents"`
	DemoIncidents  int64   `json:"demo_incidents"`
	DemoPct        float64 `json:"demo_pct"`
}

// AreaRisk is the single-area lookup result with its risk bucket.
type AreaRisk struct {
	AreaSafety
	RiskLevel string `json:"risk_level"`
}

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PageLink is one entry of the pagination window.
type PageLink struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// IncidentListResponse renders a filtered, paginated incident list page.
type IncidentListResponse struct {
	Rows       []IncidentRow `json:"rows"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
	PageLinks  []PageLink    `json:"page_links"`
}

// IncidentDetailResponse renders a single incident with its people.
// Errors is populated when a mutation failed validation: the incident
// re-renders with its prior state unchanged and every message listed.
type IncidentDetailResponse struct {
	Incident IncidentDetail `json:"incident"`
	Suspects []Suspect      `json:"suspects"`
	Victims  []Victim       `json:"victims"`
	Errors   []string       `json:"errors,omitempty"`
}

// ValidationResponse re-renders a form submission that failed domain
// validation: every applicable message, original input preserved.
type ValidationResponse struct {
	Errors []string          `json:"errors"`
	Form   map[string]string `json:"form,omitempty"`
}

// NewIncidentFormResponse carries the creation form's dropdown data.
type NewIncidentFormResponse struct {
	Jurisdictions []Jurisdiction    `json:"jurisdictions"`
	CrimeTypes    []CrimeTypeOption `json:"crime_types"`
	Errors        []string          `json:"errors,omitempty"`
	Form          map[string]string `json:"form,omitempty"`
}

// SystemResponse renders the taxonomy administration page. Success and
// failure both re-render in place (no redirect), unlike the incident
// creation flow.
type SystemResponse struct {
	LawCategories []LawCategory `json:"law_categories"`
	Message       string        `json:"message,omitempty"`
	Errors        []string      `json:"errors,omitempty"`
}

// AnalysisResponse holds the three independent report sections.
type AnalysisResponse struct {
	TopCrimeTypes []CrimeTypeCount `json:"top_crime_types"`
	Demographic   []CrimeTypeCount `json:"demographic_breakdown"`
	Trend         []TrendPoint     `json:"yearly_trend"`
}

// RecommendationsResponse renders the safest-areas report plus the
// optional single-area lookup.
type RecommendationsResponse struct {
	SafestAreas []AreaSafety `json:"safest_areas"`
	AreaLookup  *AreaRisk    `json:"area_lookup,omitempty"`
}
