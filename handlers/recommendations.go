// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/yl5961/crimewatch/filters"
	"github.com/yl5961/crimewatch/middleware"
	"github.com/yl5961/crimewatch/models"
)

// RecommendationsHandler ranks areas by how rarely incidents there
// involve victims matching a chosen demographic profile.
type RecommendationsHandler struct {
	db *sql.DB
}

func NewRecommendationsHandler(db *sql.DB) *RecommendationsHandler {
	return &RecommendationsHandler{db: db}
}

// Report handles GET /recommendations. It always returns the ten areas
// with the lowest demographic match rate; when postal_code is supplied
// it additionally looks up that single area and buckets its rate into a
// risk level.
func (h *RecommendationsHandler) Report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gender := q.Get("gender")
	ageGrp := q.Get("age_grp")
	race := q.Get("race")

	safest, err := h.safestAreas(gender, ageGrp, race)
	if err != nil {
		slog.Error("safest areas query failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.RecommendationsResponse{SafestAreas: safest}

	if postal := q.Get("postal_code"); postal != "" {
		lookup, err := h.areaLookup(postal, gender, ageGrp, race)
		if err != nil {
			slog.Error("area lookup query failed", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		resp.AreaLookup = lookup
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// incidentMatch builds the per-incident match expression: an EXISTS
// over victims when a demographic is supplied, TRUE otherwise. With no
// demographic every incident matches and every rate reads 100%.
func incidentMatch(b *filters.Builder, gender, ageGrp, race string) string {
	match := b.VictimMatch(gender, ageGrp, race)
	if match == "TRUE" {
		return "TRUE"
	}
	return "EXISTS (SELECT 1 FROM victim v WHERE v.incident_id = i.incident_id AND " + match + ")"
}

// safestAreas computes the per-area match rate and returns the ten
// lowest, ties broken by volume (busier areas first, their rate being
// better supported) and then postal code.
func (h *RecommendationsHandler) safestAreas(gender, ageGrp, race string) ([]models.AreaSafety, error) {
	b := filters.New()
	match := incidentMatch(b, gender, ageGrp, race)

	query := `
		WITH area AS (
			SELECT a.postal_code, a.borough,
			       COUNT(*) AS total_incidents,
			       COUNT(*) FILTER (WHERE ` + match + `) AS demo_incidents
			FROM incident i
			JOIN address a ON a.address_id = i.address_id
			GROUP BY a.postal_code, a.borough
		)
		SELECT postal_code, borough, total_incidents, demo_incidents,
		       100.0 * demo_incidents / total_incidents AS demo_pct
		FROM area
		ORDER BY demo_pct ASC, total_incidents DESC, postal_code ASC
		LIMIT 10
	`
	rows, err := h.db.Query(query, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := []models.AreaSafety{}
	for rows.Next() {
		var a models.AreaSafety
		if err := rows.Scan(&a.PostalCode, &a.Borough, &a.TotalIncidents, &a.DemoIncidents, &a.DemoPct); err != nil {
			return nil, err
		}
		a.DemoPct = roundPct(a.DemoPct)
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// areaLookup computes the match rate for one postal code. Returns nil
// when the area has no incidents at all.
func (h *RecommendationsHandler) areaLookup(postal, gender, ageGrp, race string) (*models.AreaRisk, error) {
	b := filters.New()
	match := incidentMatch(b, gender, ageGrp, race)
	postalArg := b.Arg(postal)

	query := `
		SELECT MIN(a.borough),
		       COUNT(*) AS total_incidents,
		       COUNT(*) FILTER (WHERE ` + match + `) AS demo_incidents
		FROM incident i
		JOIN address a ON a.address_id = i.address_id
		WHERE a.postal_code = ` + postalArg + `
	`
	var borough sql.NullString
	var total, demo int64
	err := h.db.QueryRow(query, b.Args()...).Scan(&borough, &total, &demo)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && total == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pct := roundPct(100.0 * float64(demo) / float64(total))
	return &models.AreaRisk{
		AreaSafety: models.AreaSafety{
			PostalCode:     postal,
			Borough:        borough.String,
			TotalIncidents: total,
			DemoIncidents:  demo,
			DemoPct:        pct,
		},
		RiskLevel: riskLevel(pct),
	}, nil
}

// riskLevel buckets a demographic match percentage.
func riskLevel(pct float64) string {
	switch {
	case pct <= 10:
		return models.RiskLow
	case pct <= 25:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}

func roundPct(p float64) float64 {
	return math.Round(p*10) / 10
}
