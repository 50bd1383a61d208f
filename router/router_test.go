// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http/httptest"
	"testing"

	_ "github.com/lib/pq"

	"github.com/yl5961/crimewatch/testutil"
)

func TestRoutes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.SeedJurisdiction(t, db, 72.0, "NYPD")
	addr := testutil.SeedAddress(t, db, "Brooklyn", "11201", 40.69, -73.99)
	ct := testutil.SeedCrimeType(t, db, "F", "Robbery", "high")
	testutil.SeedIncident(t, db, 72.0, addr, "2024-05-01", "Open", ct)

	mux := NewRouter(db)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"root is the incident list", "GET", "/", 200},
		{"demo page", "GET", "/another", 200},
		{"health", "GET", "/health", 200},
		{"public list", "GET", "/incidents", 200},
		{"analysis", "GET", "/incidents/analysis", 200},
		{"public detail", "GET", "/incident/1", 200},
		{"recommendations", "GET", "/recommendations", 200},
		{"admin list", "GET", "/admin", 200},
		{"admin detail", "GET", "/admin/1", 200},
		{"admin detail missing", "GET", "/admin/9999", 404},
		{"creation form beats id route", "GET", "/admin/new", 200},
		{"system page beats id route", "GET", "/admin/system", 200},
		{"login", "GET", "/login", 401},
		{"unknown path", "GET", "/nope", 404},
		{"wrong method", "DELETE", "/incidents", 405},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d for %s %s, got %d. Body: %s",
					tt.expectedStatus, tt.method, tt.path, w.Code, w.Body.String())
			}
		})
	}
}
