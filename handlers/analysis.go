// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/yl5961/crimewatch/filters"
	"github.com/yl5961/crimewatch/middleware"
	"github.com/yl5961/crimewatch/models"
)

// presetDays maps the time-window presets of the top crime types report
// to a lookback in days. An absent window means unbounded; a supplied
// but unrecognized preset falls back to 90 days.
var presetDays = map[string]int{
	"90d": 90,
	"1y":  365,
	"5y":  1825,
	"10y": 3650,
}

// AnalysisHandler serves the analytics page's three independent report
// sections. Each section reads its own query parameters, so refining
// one report leaves the others on their defaults.
type AnalysisHandler struct {
	db *sql.DB
}

func NewAnalysisHandler(db *sql.DB) *AnalysisHandler {
	return &AnalysisHandler{db: db}
}

// Report handles GET /incidents/analysis.
func (h *AnalysisHandler) Report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	top, err := h.topCrimeTypes(q)
	if err != nil {
		slog.Error("top crime types query failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	demo, err := h.demographicBreakdown(q)
	if err != nil {
		slog.Error("demographic breakdown query failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	trend, err := h.yearlyTrend(q)
	if err != nil {
		slog.Error("yearly trend query failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AnalysisResponse{
		TopCrimeTypes: top,
		Demographic:   demo,
		Trend:         trend,
	})
}

// topCrimeTypes returns the crime types occupying the top ten count
// ranks in the selected window and area. Ranking is dense, so every
// type tied at the tenth-highest count is included; the slice can hold
// more than ten rows.
func (h *AnalysisHandler) topCrimeTypes(q url.Values) ([]models.CrimeTypeCount, error) {
	b := filters.New()

	window := q.Get("window")
	if window != "" && window != "all" {
		days, ok := presetDays[window]
		if !ok {
			days = presetDays["90d"]
		}
		cutoff := time.Now().AddDate(0, 0, -days).Format(dateFormat)
		b.AtLeast("i.occurred_date", cutoff)
	}
	b.Equal("a.borough", q.Get("borough"))
	b.Equal("a.postal_code", q.Get("postal_code"))

	query := `
		WITH counted AS (
			SELECT ct.crime_type, COUNT(*) AS incident_count,
			       DENSE_RANK() OVER (ORDER BY COUNT(*) DESC) AS rnk
			FROM incident i
			JOIN address a ON a.address_id = i.address_id
			JOIN classified_as ca ON ca.incident_id = i.incident_id
			JOIN crimetype ct ON ct.crime_type_id = ca.crime_type_id
			` + b.WhereClause() + `
			GROUP BY ct.crime_type
		)
		SELECT crime_type, incident_count
		FROM counted
		WHERE rnk <= 10
		ORDER BY incident_count DESC, crime_type
	`
	return h.queryCounts(query, b.Args())
}

// demographicBreakdown counts incidents per crime type among incidents
// with at least one victim matching the supplied demographic. With no
// demographic supplied it degenerates to an overall per-type count.
func (h *AnalysisHandler) demographicBreakdown(q url.Values) ([]models.CrimeTypeCount, error) {
	b := filters.New()
	b.Equal("a.postal_code", q.Get("custom_postal_code"))
	b.VictimExists(q.Get("custom_gender"), q.Get("custom_age_group"), q.Get("custom_ethnicity"))

	query := `
		SELECT ct.crime_type, COUNT(*) AS incident_count
		FROM incident i
		JOIN address a ON a.address_id = i.address_id
		JOIN classified_as ca ON ca.incident_id = i.incident_id
		JOIN crimetype ct ON ct.crime_type_id = ca.crime_type_id
		` + b.WhereClause() + `
		GROUP BY ct.crime_type_id, ct.crime_type
		ORDER BY incident_count DESC, ct.crime_type
	`
	return h.queryCounts(query, b.Args())
}

// yearlyTrend counts incidents per calendar year, optionally bounded by
// year and narrowed by crime type or borough.
func (h *AnalysisHandler) yearlyTrend(q url.Values) ([]models.TrendPoint, error) {
	b := filters.New()
	b.AtLeast("EXTRACT(YEAR FROM i.occurred_date)", q.Get("year_from"))
	b.AtMost("EXTRACT(YEAR FROM i.occurred_date)", q.Get("year_to"))
	b.Equal("ca.crime_type_id", q.Get("crime_type_id"))
	b.Equal("a.borough", q.Get("trend_borough"))

	query := `
		SELECT EXTRACT(YEAR FROM i.occurred_date)::int AS year, COUNT(*) AS incident_count
		FROM incident i
		JOIN address a ON a.address_id = i.address_id
		JOIN classified_as ca ON ca.incident_id = i.incident_id
		` + b.WhereClause() + `
		GROUP BY year
		ORDER BY year
	`
	rows, err := h.db.Query(query, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []models.TrendPoint{}
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.Year, &p.IncidentCount); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (h *AnalysisHandler) queryCounts(query string, args []any) ([]models.CrimeTypeCount, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.CrimeTypeCount{}
	for rows.Next() {
		var c models.CrimeTypeCount
		if err := rows.Scan(&c.CrimeType, &c.IncidentCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
