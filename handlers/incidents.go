// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yl5961/crimewatch/filters"
	"github.com/yl5961/crimewatch/middleware"
	"github.com/yl5961/crimewatch/models"
	"github.com/yl5961/crimewatch/pagination"
)

// incidentJoins is the shared FROM clause of every incident list and
// detail query. Victim filters never join here; they compile to EXISTS
// subqueries so one incident is always one row.
const incidentJoins = `
	FROM incident i
	    JOIN address a ON i.address_id = a.address_id
	    JOIN jurisdiction j ON i.jur_id = j.jur_id
	    JOIN classified_as ca ON i.incident_id = ca.incident_id
	    JOIN crimetype ct ON ca.crime_type_id = ct.crime_type_id
	    JOIN lawcategory lc ON lc.law_cat_id = ct.law_cat_id
`

// dateFormat is the fixed textual date format used across forms and
// rendered pages.
const dateFormat = "2006-01-02"

// listFilters translates the shared list/search parameters into a
// predicate builder. Public and admin lists use the identical set.
func listFilters(q url.Values) *filters.Builder {
	b := filters.New()
	b.Equal("lc.category", q.Get("lawcategory"))
	b.Equal("i.status", q.Get("status"))
	b.AnyOf("a.borough", q["borough"])
	b.Equal("ct.severity", q.Get("severity"))
	b.Substring("ct.crime_type", q.Get("crime_type"))
	b.Equal("a.postal_code", q.Get("postal_code"))
	b.AtLeast("i.occurred_date", q.Get("date_start"))
	b.AtMost("i.occurred_date", q.Get("date_end"))
	b.VictimExists(q.Get("victim_gender"), q.Get("victim_age_grp"), q.Get("victim_ethnicity"))
	return b
}

type IncidentHandler struct {
	db *sql.DB
}

func NewIncidentHandler(db *sql.DB) *IncidentHandler {
	return &IncidentHandler{db: db}
}

// List handles GET / and GET /incidents: the public filtered, paginated
// incident list.
func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b := listFilters(q)
	where := b.WhereClause()

	// Count and data queries share the builder, so their predicates and
	// arguments cannot diverge.
	var total int
	err := h.db.QueryRow("SELECT COUNT(*) AS total"+incidentJoins+where, b.Args()...).Scan(&total)
	if err != nil {
		slog.Error("failed to count incidents", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	page := pagination.New(pagination.ParsePage(q.Get("page")), pagination.PerPage, total)

	dataQuery := `
	SELECT i.occurred_date, ct.crime_type, lc.category, ct.severity, i.status,
	       j.description AS jurisdiction, a.borough, a.postal_code` +
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
		if err := rows.Scan(&occurred, &row.CrimeType, &row.Category, &row.Severity,
			&row.Status, &row.Jurisdiction, &row.Borough, &row.PostalCode); err != nil {
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

// Detail handles GET /incident/{id}: the public read-only incident
// detail page.
func (h *IncidentHandler) Detail(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// loadIncidentDetail fetches the joined incident projection plus its
// suspects and victims ordered by their identifiers. Returns
// sql.ErrNoRows when the incident does not exist.
func loadIncidentDetail(db *sql.DB, incidentID int64) (*models.IncidentDetailResponse, error) {
	var detail models.IncidentDetail
	var occurred time.Time
	err := db.QueryRow(`
	SELECT i.incident_id, i.occurred_date, i.status, i.incident_details AS description,
	       ct.crime_type, lc.category, ct.severity,
	       j.description AS jurisdiction, a.borough, a.postal_code`+
		incidentJoins+`
	WHERE i.incident_id = $1
	`, incidentID).Scan(
		&detail.IncidentID, &occurred, &detail.Status, &detail.Description,
		&detail.CrimeType, &detail.Category, &detail.Severity,
		&detail.Jurisdiction, &detail.Borough, &detail.PostalCode,
	)
	if err != nil {
		return nil, err
	}
	detail.OccurredDate = occurred.Format(dateFormat)

	suspects := []models.Suspect{}
	rows, err := db.Query(`
		SELECT suspect_id, gender, race, age_grp, arrest_status
		FROM suspect
		WHERE incident_id = $1
		ORDER BY suspect_id
	`, incidentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s models.Suspect
		if err := rows.Scan(&s.SuspectID, &s.Gender, &s.Race, &s.AgeGrp, &s.ArrestStatus); err != nil {
			return nil, err
		}
		suspects = append(suspects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	victims := []models.Victim{}
	vrows, err := db.Query(`
		SELECT victim_id, gender, race, injury_severity, age_grp
		FROM victim
		WHERE incident_id = $1
		ORDER BY victim_id
	`, incidentID)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var v models.Victim
		if err := vrows.Scan(&v.VictimID, &v.Gender, &v.Race, &v.InjurySeverity, &v.AgeGrp); err != nil {
			return nil, err
		}
		victims = append(victims, v)
	}
	if err := vrows.Err(); err != nil {
		return nil, err
	}

	return &models.IncidentDetailResponse{
		Incident: detail,
		Suspects: suspects,
		Victims:  victims,
	}, nil
}
