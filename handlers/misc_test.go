// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"net/url"
	"testing"

	_ "github.com/lib/pq"

	"github.com/yl5961/crimewatch/testutil"
)

func TestAddNameAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	handler := NewMiscHandler(db)

	w := httptest.NewRecorder()
	handler.AddName(w, testutil.MakeRequest("POST", "/add", url.Values{"name": {"grace hopper"}}))
	testutil.AssertStatus(t, w, 303)
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}

	w = httptest.NewRecorder()
	handler.Another(w, testutil.MakeRequest("GET", "/another", nil))
	testutil.AssertStatus(t, w, 200)
	var resp struct {
		Names []string `json:"names"`
	}
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Names) != 1 || resp.Names[0] != "grace hopper" {
		t.Errorf("Expected the added name, got %v", resp.Names)
	}
}

func TestAnotherToleratesNullName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	handler := NewMiscHandler(db)

	// POST /add never writes NULL, but the column allows it.
	if _, err := db.Exec(`INSERT INTO test (name) VALUES (NULL)`); err != nil {
		t.Fatalf("Failed to insert null name: %v", err)
	}

	w := httptest.NewRecorder()
	handler.Another(w, testutil.MakeRequest("GET", "/another", nil))
	testutil.AssertStatus(t, w, 200)
	var resp struct {
		Names []string `json:"names"`
	}
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Names) != 1 || resp.Names[0] != "" {
		t.Errorf("Expected one empty name, got %v", resp.Names)
	}
}

func TestAddNameRequiresName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	handler := NewMiscHandler(db)

	w := httptest.NewRecorder()
	handler.AddName(w, testutil.MakeRequest("POST", "/add", url.Values{"name": {"   "}}))
	testutil.AssertStatus(t, w, 400)
}

func TestLoginAlwaysRefuses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	handler := NewMiscHandler(db)

	w := httptest.NewRecorder()
	handler.Login(w, testutil.MakeRequest("GET", "/login", nil))
	testutil.AssertStatus(t, w, 401)
}

func TestHealth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	handler := NewMiscHandler(db)

	w := httptest.NewRecorder()
	handler.Health(w, testutil.MakeRequest("GET", "/health", nil))
	testutil.AssertStatus(t, w, 200)
}
