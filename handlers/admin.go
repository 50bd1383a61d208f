// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/yl5961/crimewatch/middleware"
	"github.com/yl5961/crimewatch/models"
	"github.com/yl5961/crimewatch/pagination"
)

// AdminHandler serves the administration surface: the admin incident
// list, incident detail with mutations, the creation workflow, and
// taxonomy administration.
type AdminHandler struct {
	db *sql.DB
}

func NewAdminHandler(db *sql.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// List handles GET /admin: the admin incident list. Same filter set as
// the public list; the projection additionally carries the incident id
// for detail linking.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b := listFilters(q)
	where := b.WhereClause()

	var total int
	err := h.db.QueryRow("SELECT COUNT(*) AS total"+incidentJoins+where, b.Args()...).Scan(&total)
	if err != nil {
		slog.Error("failed to count incidents", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	page := pagination.New(pagination.ParsePage(q.Get("page")), pagination.PerPage, total)

	dataQuery := `
	SELECT i.incident_id, i.occurred_date, ct.crime_type, lc.category, ct.severity,
	       i.status, j.description AS jurisdiction, a.borough, a.postal_code` +
		incidentJoins + where + `
	ORDER BY i.occurred_date DESC, i.incident_id DESC
	LIMIT ` + b.Arg(page.PerPage) + ` OFFSET ` + b.Arg(page.Offset)

	rows, err := h.db.Query(dataQuery, b.Args()...)
	if err != nil {
		slog.Error("failed to query incidents", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	results := []models.IncidentRow{}
	for rows.Next() {
		var row models.IncidentRow
		var occurred time.Time
		if err := rows.Scan(&row.IncidentID, &occurred, &row.CrimeType, &row.Category,
			&row.Severity, &row.Status, &row.Jurisdiction, &row.Borough, &row.PostalCode); err != nil {
			slog.Error("failed to scan incident row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		row.OccurredDate = occurred.Format(dateFormat)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read incident rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.IncidentListResponse{
		Rows:       results,
		Page:       page.Number,
		PerPage:    page.PerPage,
		Total:      total,
		TotalPages: page.TotalPages,
		PageLinks:  page.Links(r.URL.Path, q),
	})
}
