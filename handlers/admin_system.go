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

// System handles GET and POST /admin/system, the taxonomy
// administration page. Both outcomes re-render the same page; there
// is no redirect here, unlike the incident mutation flows.
func (h *AdminHandler) System(w http.ResponseWriter, r *http.Request) {
	lawcats, err := h.loadLawCategories()
	if err != nil {
		slog.Error("failed to load law categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.SystemResponse{LawCategories: lawcats}
	status := http.StatusOK

	if r.Method == http.MethodPost {
		switch r.FormValue("kind") {
		case "crimetype":
			resp.Message, resp.Errors = h.createCrimeType(r)
		case "jurisdiction":
			resp.Message, resp.Errors = h.createJurisdiction(r)
		}
		if len(resp.Errors) > 0 {
			status = http.StatusBadRequest
		}
	}

	middleware.JSONResponse(w, status, resp)
}

// createCrimeType validates and inserts a new crime type. Duplicate
// detection is case-insensitive within a law category.
func (h *AdminHandler) createCrimeType(r *http.Request) (string, []string) {
	lawCatID := strings.ToUpper(strings.TrimSpace(r.FormValue("law_cat_id")))
	name := strings.TrimSpace(r.FormValue("crime_type"))
	severity := strings.ToLower(strings.TrimSpace(r.FormValue("severity")))

	var errs []string
	if !models.ValidLawCategory(lawCatID) {
		errs = append(errs, "Law category must be F, M, or V.")
	}
	if name == "" {
		errs = append(errs, "Crime type name is required.")
	}
	if !models.ValidSeverity(severity) {
		errs = append(errs, "Severity must be low, medium, or high.")
	}
	if len(errs) > 0 {
		return "", errs
	}

	var category string
	err := h.db.QueryRow(`SELECT category FROM lawcategory WHERE law_cat_id = $1`, lawCatID).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return "", []string{"Law category does not exist."}
	}
	if err != nil {
		slog.Error("failed to check law category", "error", err)
		return "", []string{"Database error."}
	}

	var one int
	err = h.db.QueryRow(`
		SELECT 1 FROM crimetype
		WHERE law_cat_id = $1 AND lower(crime_type) = $2
	`, lawCatID, strings.ToLower(name)).Scan(&one)
	if err == nil {
		return "", []string{fmt.Sprintf("Crime type %q already exists under %s.", name, category)}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to check crime type", "error", err)
		return "", []string{"Database error."}
	}

	_, err = h.db.Exec(`
		INSERT INTO crimetype (law_cat_id, crime_type, severity)
		VALUES ($1, $2, $3)
	`, lawCatID, name, severity)
	if err != nil {
		slog.Error("failed to insert crime type", "error", err)
		return "", []string{"Database error."}
	}

	slog.Info("crime type created", "crime_type", name, "law_cat_id", lawCatID)
	return fmt.Sprintf("Created crime type %q (%s) under %s", name, severity, category), nil
}

// createJurisdiction validates and inserts a new jurisdiction. The
// identifier is entered as a non-negative integer but stored as the
// floating-point representation the incident table references.
func (h *AdminHandler) createJurisdiction(r *http.Request) (string, []string) {
	idRaw := strings.TrimSpace(r.FormValue("jur_id"))
	description := strings.TrimSpace(r.FormValue("description"))

	var errs []string
	id, err := strconv.ParseInt(idRaw, 10, 64)
	if idRaw == "" || err != nil || id < 0 {
		errs = append(errs, "Jurisdiction ID must be a non-negative integer.")
	}
	if description == "" {
		errs = append(errs, "Description is required.")
	}
	if len(errs) > 0 {
		return "", errs
	}

	jurID := float64(id)
	var one int
	err = h.db.QueryRow(`SELECT 1 FROM jurisdiction WHERE jur_id = $1`, jurID).Scan(&one)
	if err == nil {
		return "", []string{fmt.Sprintf("Jurisdiction %d already exists.", id)}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to check jurisdiction", "error", err)
		return "", []string{"Database error."}
	}

	_, err = h.db.Exec(`
		INSERT INTO jurisdiction (jur_id, description)
		VALUES ($1, $2)
	`, jurID, description)
	if err != nil {
		slog.Error("failed to insert jurisdiction", "error", err)
		return "", []string{"Database error."}
	}

	slog.Info("jurisdiction created", "jur_id", id)
	return fmt.Sprintf("Created jurisdiction %d (%s)", id, description), nil
}

func (h *AdminHandler) loadLawCategories() ([]models.LawCategory, error) {
	rows, err := h.db.Query(`SELECT law_cat_id, category FROM lawcategory ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lawcats := []models.LawCategory{}
	for rows.Next() {
		var lc models.LawCategory
		if err := rows.Scan(&lc.LawCatID, &lc.Category); err != nil {
			return nil, err
		}
		lawcats = append(lawcats, lc)
	}
	return lawcats, rows.Err()
}
