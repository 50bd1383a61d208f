// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yl5961/crimewatch/middleware"
	"github.com/yl5961/crimewatch/models"
)

// newIncidentFields lists the form fields echoed back on validation
// failure so the user's input survives a re-render.
var newIncidentFields = []string{
	"occurred_date", "status", "incident_details", "jur_id", "crime_type_id",
	"borough", "postal_code", "latitude", "longitude",
	"suspect1_gender", "suspect1_race", "suspect1_age_grp", "suspect1_arrest_status",
	"suspect2_gender", "suspect2_race", "suspect2_age_grp", "suspect2_arrest_status",
	"suspect3_gender", "suspect3_race", "suspect3_age_grp", "suspect3_arrest_status",
	"victim1_gender", "victim1_race", "victim1_age_grp", "victim1_injury",
	"victim2_gender", "victim2_race", "victim2_age_grp", "victim2_injury",
	"victim3_gender", "victim3_race", "victim3_age_grp", "victim3_injury",
}

// NewIncident handles GET and POST /admin/new. GET returns the form's
// dropdown data; POST validates the whole submission before any write,
// then creates the incident, its classification, and up to three
// suspect and victim slots in one transaction.
func (h *AdminHandler) NewIncident(w http.ResponseWriter, r *http.Request) {
	jurs, crimes, err := h.loadFormData()
	if err != nil {
		slog.Error("failed to load form data", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if r.Method == http.MethodGet {
		middleware.JSONResponse(w, http.StatusOK, models.NewIncidentFormResponse{
			Jurisdictions: jurs,
			CrimeTypes:    crimes,
		})
		return
	}

	occurredDate := strings.TrimSpace(r.FormValue("occurred_date"))
	status := strings.TrimSpace(r.FormValue("status"))
	if status == "" {
		status = models.StatusOpen
	}
	details := strings.TrimSpace(r.FormValue("incident_details"))

	jurIDRaw := strings.TrimSpace(r.FormValue("jur_id"))
	crimeTypeIDRaw := strings.TrimSpace(r.FormValue("crime_type_id"))

	borough := strings.TrimSpace(r.FormValue("borough"))
	postalCode := strings.TrimSpace(r.FormValue("postal_code"))
	latitude := strings.TrimSpace(r.FormValue("latitude"))
	longitude := strings.TrimSpace(r.FormValue("longitude"))

	var errs []string

	if occurredDate == "" {
		errs = append(errs, "Occurred Date is required.")
	}
	if !models.ValidStatus(status) {
		errs = append(errs, "Status must be Open or Closed.")
	}
	if jurIDRaw == "" {
		errs = append(errs, "Jurisdiction is required.")
	}
	if crimeTypeIDRaw == "" {
		errs = append(errs, "Crime type is required.")
	}
	if borough == "" || postalCode == "" || latitude == "" || longitude == "" {
		errs = append(errs, "Address requires borough, postal code, latitude, and longitude.")
	}

	when, dateErr := time.Parse(dateFormat, occurredDate)
	if occurredDate != "" && dateErr != nil {
		errs = append(errs, "Occurred Date is invalid (use YYYY-MM-DD).")
	}

	lat, latErr := strconv.ParseFloat(latitude, 64)
	lon, lonErr := strconv.ParseFloat(longitude, 64)
	if latitude != "" && longitude != "" && (latErr != nil || lonErr != nil) {
		errs = append(errs, "Latitude/Longitude must be numeric.")
	}

	var crimeTypeID int64
	if crimeTypeIDRaw != "" {
		id, err := strconv.ParseInt(crimeTypeIDRaw, 10, 64)
		if err != nil {
			errs = append(errs, "Crime type selection is invalid.")
		}
		crimeTypeID = id
	}

	// Jurisdiction lookups use the stored floating-point representation.
	var jurID float64
	jurParsed := false
	if jurIDRaw != "" {
		id, err := strconv.ParseFloat(jurIDRaw, 64)
		if err != nil {
			errs = append(errs, "Jurisdiction value is invalid.")
		} else {
			jurID = id
			jurParsed = true
		}
	}
	if jurParsed {
		var one int
		err := h.db.QueryRow(`SELECT 1 FROM jurisdiction WHERE jur_id = $1`, jurID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			errs = append(errs, "Selected jurisdiction does not exist.")
		} else if err != nil {
			slog.Error("failed to check jurisdiction", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	if len(errs) > 0 {
		form := map[string]string{}
		for _, field := range newIncidentFields {
			if v := r.FormValue(field); v != "" {
				form[field] = v
			}
		}
		middleware.JSONResponse(w, http.StatusBadRequest, models.NewIncidentFormResponse{
			Jurisdictions: jurs,
			CrimeTypes:    crimes,
			Errors:        errs,
			Form:          form,
		})
		return
	}

	// All writes happen in one transaction: no incident is ever left
	// without its classification row.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Reuse an identical address row when one exists.
	var addressID int64
	err = tx.QueryRow(`
		SELECT address_id
		FROM address
		WHERE borough = $1 AND postal_code = $2 AND latitude = $3 AND longitude = $4
		LIMIT 1
	`, borough, postalCode, lat, lon).Scan(&addressID)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.QueryRow(`
			INSERT INTO address (borough, postal_code, latitude, longitude)
			VALUES ($1, $2, $3, $4)
			RETURNING address_id
		`, borough, postalCode, lat, lon).Scan(&addressID)
	}
	if err != nil {
		slog.Error("failed to resolve address", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create incident")
		return
	}

	var detailsVal any
	if details != "" {
		detailsVal = details
	}
	var incidentID int64
	err = tx.QueryRow(`
		INSERT INTO incident (jur_id, address_id, occurred_date, status, incident_details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING incident_id
	`, jurID, addressID, when.Format(dateFormat), status, detailsVal).Scan(&incidentID)
	if err != nil {
		slog.Error("failed to insert incident", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create incident")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO classified_as (incident_id, crime_type_id)
		VALUES ($1, $2)
	`, incidentID, crimeTypeID)
	if err != nil {
		slog.Error("failed to insert classification", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create incident")
		return
	}

	// Up to three optional slots each. A slot is written only when both
	// gender and age group are present; partially filled slots are
	// dropped silently (existing behavior, kept deliberately).
	for i := 1; i <= 3; i++ {
		gender := strings.TrimSpace(r.FormValue(fmt.Sprintf("suspect%d_gender", i)))
		race := strings.TrimSpace(r.FormValue(fmt.Sprintf("suspect%d_race", i)))
		ageGrp := strings.TrimSpace(r.FormValue(fmt.Sprintf("suspect%d_age_grp", i)))
		arrested := r.FormValue(fmt.Sprintf("suspect%d_arrest_status", i)) == "on"

		if gender == "" || ageGrp == "" {
			continue
		}
		var raceVal any
		if race != "" {
			raceVal = race
		}
		_, err = tx.Exec(`
			INSERT INTO suspect (incident_id, gender, race, age_grp, arrest_status)
			VALUES ($1, $2, $3, $4, $5)
		`, incidentID, gender, raceVal, ageGrp, arrested)
		if err != nil {
			slog.Error("failed to insert suspect", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create incident")
			return
		}
	}

	for i := 1; i <= 3; i++ {
		gender := strings.TrimSpace(r.FormValue(fmt.Sprintf("victim%d_gender", i)))
		race := strings.TrimSpace(r.FormValue(fmt.Sprintf("victim%d_race", i)))
		ageGrp := strings.TrimSpace(r.FormValue(fmt.Sprintf("victim%d_age_grp", i)))
		injury := strings.TrimSpace(r.FormValue(fmt.Sprintf("victim%d_injury", i)))

		if gender == "" || ageGrp == "" {
			continue
		}
		var raceVal, injuryVal any
		if race != "" {
			raceVal = race
		}
		if injury != "" {
			injuryVal = injury
		}
		_, err = tx.Exec(`
			INSERT INTO victim (incident_id, gender, race, injury_severity, age_grp)
			VALUES ($1, $2, $3, $4, $5)
		`, incidentID, gender, raceVal, injuryVal, ageGrp)
		if err != nil {
			slog.Error("failed to insert victim", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create incident")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit incident", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create incident")
		return
	}

	slog.Info("incident created", "incident_id", incidentID)
	middleware.SeeOther(w, r, fmt.Sprintf("/admin/%d", incidentID))
}

// loadFormData fetches the creation form's dropdowns: jurisdictions
// (with integer display ids) and crime types grouped by category.
func (h *AdminHandler) loadFormData() ([]models.Jurisdiction, []models.CrimeTypeOption, error) {
	jurs := []models.Jurisdiction{}
	rows, err := h.db.Query(`
		SELECT jur_id, description
		FROM jurisdiction
		ORDER BY description
	`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var j models.Jurisdiction
		if err := rows.Scan(&j.JurID, &j.Description); err != nil {
			return nil, nil, err
		}
		j.DisplayID = int64(j.JurID)
		jurs = append(jurs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	crimes := []models.CrimeTypeOption{}
	crows, err := h.db.Query(`
		SELECT ct.crime_type_id, ct.crime_type, ct.severity, lc.category
		FROM crimetype ct
		JOIN lawcategory lc ON lc.law_cat_id = ct.law_cat_id
		ORDER BY lc.category, ct.crime_type
	`)
	if err != nil {
		return nil, nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var c models.CrimeTypeOption
		if err := crows.Scan(&c.CrimeTypeID, &c.CrimeType, &c.Severity, &c.Category); err != nil {
			return nil, nil, err
		}
		crimes = append(crimes, c)
	}
	if err := crows.Err(); err != nil {
		return nil, nil, err
	}

	return jurs, crimes, nil
}
