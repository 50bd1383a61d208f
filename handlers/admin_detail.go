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

	"github.com/yl5961/crimewatch/middleware"
	"github.com/yl5961/crimewatch/models"
)

// Detail handles GET and POST /admin/{id}. GET renders the incident
// with its suspects and victims; POST dispatches on the "action" form
// field to one of the mutations below. Every mutation validates before
// writing and each write is atomic.
func (h *AdminHandler) Detail(w http.ResponseWriter, r *http.Request) {
	incidentID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Incident not found")
		return
	}

	detail, err := loadIncidentDetail(h.db, incidentID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Incident not found")
		return
	}
	if err != nil {
		slog.Error("failed to load incident", "error", err, "incident_id", incidentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if r.Method == http.MethodPost {
		h.dispatchAction(w, r, incidentID, detail)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

func (h *AdminHandler) dispatchAction(w http.ResponseWriter, r *http.Request, incidentID int64, detail *models.IncidentDetailResponse) {
	selfURL := fmt.Sprintf("/admin/%d", incidentID)

	switch r.FormValue("action") {
	case "update_status":
		h.updateStatus(w, r, incidentID, selfURL)
	case "delete_incident":
		h.deleteIncident(w, r, incidentID)
	case "update_suspect_arrest":
		h.updateSuspectArrest(w, r, incidentID, selfURL)
	case "update_description":
		h.updateDescription(w, r, incidentID, selfURL)
	case "add_suspect":
		h.addSuspect(w, r, incidentID, selfURL, detail)
	case "add_victim":
		h.addVictim(w, r, incidentID, selfURL, detail)
	default:
		// Unknown mutation: generic error, no-op redirect back.
		middleware.SeeOther(w, r, selfURL+"?error=unknown-action")
	}
}

// updateStatus sets the incident status. Anything but the two valid
// statuses is a no-op; either way the client goes back to the detail
// page.
func (h *AdminHandler) updateStatus(w http.ResponseWriter, r *http.Request, incidentID int64, selfURL string) {
	newStatus := strings.TrimSpace(r.FormValue("new_status"))
	if models.ValidStatus(newStatus) {
		_, err := h.db.Exec(`UPDATE incident SET status = $1 WHERE incident_id = $2`, newStatus, incidentID)
		if err != nil {
			slog.Error("failed to update status", "error", err, "incident_id", incidentID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		slog.Info("incident status updated", "incident_id", incidentID, "status", newStatus)
	}
	middleware.SeeOther(w, r, selfURL)
}

// deleteIncident removes the incident; the schema's ON DELETE CASCADE
// removes its classification, suspects, and victims with it.
func (h *AdminHandler) deleteIncident(w http.ResponseWriter, r *http.Request, incidentID int64) {
	_, err := h.db.Exec(`DELETE FROM incident WHERE incident_id = $1`, incidentID)
	if err != nil {
		slog.Error("failed to delete incident", "error", err, "incident_id", incidentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	slog.Info("incident deleted", "incident_id", incidentID)
	middleware.SeeOther(w, r, "/admin?deleted="+strconv.FormatInt(incidentID, 10))
}

// updateSuspectArrest toggles one suspect's arrest flag. The update is
// scoped to the incident so a suspect id from another incident cannot
// be touched; invalid input is a no-op.
func (h *AdminHandler) updateSuspectArrest(w http.ResponseWriter, r *http.Request, incidentID int64, selfURL string) {
	sid := r.FormValue("suspect_id")
	val := r.FormValue("arrest_status") // "Yes" / "No"

	suspectID, err := strconv.ParseInt(sid, 10, 64)
	if err == nil && (val == "Yes" || val == "No") {
		_, err := h.db.Exec(`
			UPDATE suspect
			SET arrest_status = $1
			WHERE incident_id = $2 AND suspect_id = $3
		`, val == "Yes", incidentID, suspectID)
		if err != nil {
			slog.Error("failed to update arrest status", "error", err, "incident_id", incidentID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}
	middleware.SeeOther(w, r, selfURL)
}

// updateDescription replaces the free-text details; an empty submission
// stores NULL.
func (h *AdminHandler) updateDescription(w http.ResponseWriter, r *http.Request, incidentID int64, selfURL string) {
	details := strings.TrimSpace(r.FormValue("incident_details"))

	var value any
	if details != "" {
		value = details
	}
	_, err := h.db.Exec(`UPDATE incident SET incident_details = $1 WHERE incident_id = $2`, value, incidentID)
	if err != nil {
		slog.Error("failed to update description", "error", err, "incident_id", incidentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.SeeOther(w, r, selfURL)
}

// addSuspect appends a suspect after validating the bounded demographic
// attributes. Validation failure re-renders the incident unchanged with
// the collected messages; nothing is written.
func (h *AdminHandler) addSuspect(w http.ResponseWriter, r *http.Request, incidentID int64, selfURL string, detail *models.IncidentDetailResponse) {
	gender := strings.TrimSpace(r.FormValue("gender"))
	race := strings.TrimSpace(r.FormValue("race"))
	ageGrp := strings.TrimSpace(r.FormValue("age_grp"))
	arrest := r.FormValue("arrest_status") // "Yes" / "No", default No

	var errs []string
	if !models.ValidGender(gender) {
		errs = append(errs, "Gender must be Female or Male.")
	}
	if !models.ValidAgeGroup(ageGrp) {
		errs = append(errs, "Age group must be one of <18, 18-24, 25-44, 45-64, 65+.")
	}
	if arrest != "" && arrest != "Yes" && arrest != "No" {
		errs = append(errs, "Arrest status must be Yes or No.")
	}
	if len(errs) > 0 {
		detail.Errors = errs
		middleware.JSONResponse(w, http.StatusBadRequest, detail)
		return
	}

	var raceVal any
	if race != "" {
		raceVal = race
	}
	_, err := h.db.Exec(`
		INSERT INTO suspect (incident_id, gender, race, age_grp, arrest_status)
		VALUES ($1, $2, $3, $4, $5)
	`, incidentID, gender, raceVal, ageGrp, arrest == "Yes")
	if err != nil {
		slog.Error("failed to insert suspect", "error", err, "incident_id", incidentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	slog.Info("suspect added", "incident_id", incidentID)
	middleware.SeeOther(w, r, selfURL)
}

// addVictim appends a victim; like addSuspect but with the injury
// severity domain required as well.
func (h *AdminHandler) addVictim(w http.ResponseWriter, r *http.Request, incidentID int64, selfURL string, detail *models.IncidentDetailResponse) {
	gender := strings.TrimSpace(r.FormValue("gender"))
	race := strings.TrimSpace(r.FormValue("race"))
	ageGrp := strings.TrimSpace(r.FormValue("age_grp"))
	injury := strings.TrimSpace(r.FormValue("injury_severity"))

	var errs []string
	if !models.ValidGender(gender) {
		errs = append(errs, "Gender must be Female or Male.")
	}
	if !models.ValidAgeGroup(ageGrp) {
		errs = append(errs, "Age group must be one of <18, 18-24, 25-44, 45-64, 65+.")
	}
	if !models.ValidInjurySeverity(injury) {
		errs = append(errs, "Injury severity must be one of None, Minor, Severe, Fatal.")
	}
	if len(errs) > 0 {
		detail.Errors = errs
		middleware.JSONResponse(w, http.StatusBadRequest, detail)
		return
	}

	var raceVal any
	if race != "" {
		raceVal = race
	}
	_, err := h.db.Exec(`
		INSERT INTO victim (incident_id, gender, race, injury_severity, age_grp)
		VALUES ($1, $2, $3, $4, $5)
	`, incidentID, gender, raceVal, injury, ageGrp)
	if err != nil {
		slog.Error("failed to insert victim", "error", err, "incident_id", incidentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	slog.Info("victim added", "incident_id", incidentID)
	middleware.SeeOther(w, r, selfURL)
}
