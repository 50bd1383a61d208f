// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/yl5961/crimewatch/models"
	"github.com/yl5961/crimewatch/testutil"
)

func getAnalysis(t *testing.T, handler *AnalysisHandler, query string) models.AnalysisResponse {
	t.Helper()
	req := testutil.MakeRequest("GET", "/incidents/analysis"+query, nil)
	w := httptest.NewRecorder()
	handler.Report(w, req)
	testutil.AssertStatus(t, w, 200)
	var resp models.AnalysisResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

// Ranking is dense: a tie at the tenth-highest count keeps every tied
// type, so the report can exceed ten rows.
func TestTopCrimeTypesDenseRankTies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.SeedJurisdiction(t, db, 72.0, "NYPD")
	addr := testutil.SeedAddress(t, db, "Brooklyn", "11201", 40.69, -73.99)
	recent := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	// Counts 13 down to 5 occupy ranks 1-9; two types tied on 4 share
	// rank 10; a single count-1 type lands on rank 11
	counts := []int{13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 4, 1}
	for i, n := range counts {
		ct := testutil.SeedCrimeType(t, db, "F", fmt.Sprintf("Type %02d", i+1), "high")
		for j := 0; j < n; j++ {
			testutil.SeedIncident(t, db, 72.0, addr, recent, "Open", ct)
		}
	}

	handler := NewAnalysisHandler(db)
	resp := getAnalysis(t, handler, "")

	if len(resp.TopCrimeTypes) != 11 {
		t.Fatalf("Expected 11 rows (tie at rank 10), got %d", len(resp.TopCrimeTypes))
	}
	for _, row := range resp.TopCrimeTypes {
		if row.CrimeType == "Type 12" {
			t.Error("Rank 11 type must be excluded")
		}
	}
	if resp.TopCrimeTypes[0].CrimeType != "Type 01" || resp.TopCrimeTypes[0].IncidentCount != 13 {
		t.Errorf("Unexpected top row: %+v", resp.TopCrimeTypes[0])
	}
	// Tied rows order alphabetically
	last := resp.TopCrimeTypes[len(resp.TopCrimeTypes)-1]
	if resp.TopCrimeTypes[9].CrimeType != "Type 10" || last.CrimeType != "Type 11" {
		t.Errorf("Unexpected tie ordering: %q then %q", resp.TopCrimeTypes[9].CrimeType, last.CrimeType)
	}
}

func TestTopCrimeTypesWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.SeedJurisdiction(t, db, 72.0, "NYPD")
	addr := testutil.SeedAddress(t, db, "Brooklyn", "11201", 40.69, -73.99)
	ct := testutil.SeedCrimeType(t, db, "F", "Robbery", "high")

	recent := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	testutil.SeedIncident(t, db, 72.0, addr, recent, "Open", ct)
	testutil.SeedIncident(t, db, 72.0, addr, "2015-01-01", "Closed", ct)

	handler := NewAnalysisHandler(db)

	// No window means unbounded
	resp := getAnalysis(t, handler, "")
	if len(resp.TopCrimeTypes) != 1 || resp.TopCrimeTypes[0].IncidentCount != 2 {
		t.Errorf("Expected both incidents without a window, got %+v", resp.TopCrimeTypes)
	}

	resp = getAnalysis(t, handler, "?window=90d")
	if len(resp.TopCrimeTypes) != 1 || resp.TopCrimeTypes[0].IncidentCount != 1 {
		t.Errorf("Expected only the recent incident in the 90 day window, got %+v", resp.TopCrimeTypes)
	}

	// Unknown presets fall back to the 90 day window
	resp = getAnalysis(t, handler, "?window=2w")
	if len(resp.TopCrimeTypes) != 1 || resp.TopCrimeTypes[0].IncidentCount != 1 {
		t.Errorf("Expected the fallback window for an unknown preset, got %+v", resp.TopCrimeTypes)
	}

	resp = getAnalysis(t, handler, "?window=all")
	if len(resp.TopCrimeTypes) != 1 || resp.TopCrimeTypes[0].IncidentCount != 2 {
		t.Errorf("Expected both incidents with window=all, got %+v", resp.TopCrimeTypes)
	}
}

func TestDemographicBreakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.SeedJurisdiction(t, db, 72.0, "NYPD")
	addr := testutil.SeedAddress(t, db, "Brooklyn", "11201", 40.69, -73.99)
	robbery := testutil.SeedCrimeType(t, db, "F", "Robbery", "high")
	harassment := testutil.SeedCrimeType(t, db, "V", "Harassment", "low")

	a := testutil.SeedIncident(t, db, 72.0, addr, "2024-05-01", "Open", robbery)
	b := testutil.SeedIncident(t, db, 72.0, addr, "2024-05-02", "Open", robbery)
	c := testutil.SeedIncident(t, db, 72.0, addr, "2024-05-03", "Open", harassment)
	testutil.SeedVictim(t, db, a, "Female", "Asian", "Minor", "25-44")
	testutil.SeedVictim(t, db, b, "Male", "White", "None", "45-64")
	testutil.SeedVictim(t, db, c, "Female", "Asian", "None", "25-44")

	handler := NewAnalysisHandler(db)
	resp := getAnalysis(t, handler, "?custom_gender=Female&custom_age_group=25-44")

	if len(resp.Demographic) != 2 {
		t.Fatalf("Expected 2 crime types, got %d", len(resp.Demographic))
	}
	for _, row := range resp.Demographic {
		if row.IncidentCount != 1 {
			t.Errorf("Expected count 1 for %s, got %d", row.CrimeType, row.IncidentCount)
		}
	}
}

func TestYearlyTrend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.SeedJurisdiction(t, db, 72.0, "NYPD")
	addrBK := testutil.SeedAddress(t, db, "Brooklyn", "11201", 40.69, -73.99)
	addrQN := testutil.SeedAddress(t, db, "Queens", "11354", 40.76, -73.83)
	ct := testutil.SeedCrimeType(t, db, "F", "Robbery", "high")

	testutil.SeedIncident(t, db, 72.0, addrBK, "2019-03-01", "Closed", ct)
	testutil.SeedIncident(t, db, 72.0, addrBK, "2020-04-01", "Closed", ct)
	testutil.SeedIncident(t, db, 72.0, addrQN, "2020-05-01", "Closed", ct)
	testutil.SeedIncident(t, db, 72.0, addrBK, "2022-06-01", "Open", ct)

	handler := NewAnalysisHandler(db)

	resp := getAnalysis(t, handler, "")
	if len(resp.Trend) != 3 {
		t.Fatalf("Expected 3 years, got %d", len(resp.Trend))
	}
	if resp.Trend[0].Year != 2019 || resp.Trend[1].Year != 2020 || resp.Trend[1].IncidentCount != 2 {
		t.Errorf("Unexpected trend: %+v", resp.Trend)
	}

	resp = getAnalysis(t, handler, "?year_from=2020&year_to=2021")
	if len(resp.Trend) != 1 || resp.Trend[0].Year != 2020 {
		t.Errorf("Expected only 2020, got %+v", resp.Trend)
	}

	resp = getAnalysis(t, handler, "?trend_borough=Queens")
	if len(resp.Trend) != 1 || resp.Trend[0].IncidentCount != 1 {
		t.Errorf("Expected the single Queens incident, got %+v", resp.Trend)
	}
}
