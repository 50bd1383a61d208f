// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yl5961/crimewatch/middleware"
)

// MiscHandler covers the demo page and its name list, the login stub,
// and the health probe.
type MiscHandler struct {
	db *sql.DB
}

func NewMiscHandler(db *sql.DB) *MiscHandler {
	return &MiscHandler{db: db}
}

// Another handles GET /another, the demo page showing the name list
// kept in the test table.
func (h *MiscHandler) Another(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT name FROM test ORDER BY id`)
	if err != nil {
		slog.Error("failed to list names", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		// name is nullable in the schema; rows inserted outside POST /add
		// may carry NULL.
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			slog.Error("failed to scan name", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		names = append(names, name.String)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to list names", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{"names": names})
}

// AddName handles POST /add, appending a name to the demo list and
// returning to the landing page.
func (h *MiscHandler) AddName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		middleware.ValidationFailed(w, []string{"Name is required."}, nil)
		return
	}

	if _, err := h.db.Exec(`INSERT INTO test (name) VALUES ($1)`, name); err != nil {
		slog.Error("failed to insert name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.SeeOther(w, r, "/")
}

// Login handles GET /login. Authentication is not implemented; the
// route exists and always refuses.
func (h *MiscHandler) Login(w http.ResponseWriter, r *http.Request) {
	middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication is not available")
}

// Health handles GET /health, reporting process and database liveness.
func (h *MiscHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		slog.Error("health check failed", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unreachable")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
