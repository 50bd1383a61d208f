// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filters

import (
	"reflect"
	"strings"
	"testing"
)

func TestEmptyBuilder(t *testing.T) {
	b := New()

	if got := b.WhereClause(); got != "" {
		t.Errorf("Expected empty where clause, got %q", got)
	}
	if got := b.Args(); len(got) != 0 {
		t.Errorf("Expected no args, got %v", got)
	}
}

func TestBlankInputsAddNoPredicate(t *testing.T) {
	b := New()
	b.Equal("i.status", "")
	b.AnyOf("a.borough", nil)
	b.AnyOf("a.borough", []string{})
	b.Substring("ct.crime_type", "   ")
	b.AtLeast("i.occurred_date", "")
	b.AtMost("i.occurred_date", "")
	b.VictimExists("", "", "")

	if got := b.WhereClause(); got != "" {
		t.Errorf("Expected empty where clause, got %q", got)
	}
}

func TestEqualNumbersPlaceholders(t *testing.T) {
	b := New()
	b.Equal("lc.category", "Felony")
	b.Equal("i.status", "Open")

	want := "WHERE lc.category = $1 AND i.status = $2"
	if got := b.WhereClause(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	wantArgs := []any{"Felony", "Open"}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("Expected args %v, got %v", wantArgs, b.Args())
	}
}

func TestAnyOfBindsSingleArrayArg(t *testing.T) {
	b := New()
	b.AnyOf("a.borough", []string{"Brooklyn", "Queens"})

	want := "WHERE a.borough = ANY($1)"
	if got := b.WhereClause(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if len(b.Args()) != 1 {
		t.Errorf("Expected 1 bound arg for the whole set, got %d", len(b.Args()))
	}
}

func TestSubstringLowercasesAndEscapes(t *testing.T) {
	b := New()
	b.Substring("ct.crime_type", "  Grand Larceny  ")

	want := `WHERE ct.crime_type ILIKE $1 ESCAPE '\'`
	if got := b.WhereClause(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if got := b.Args()[0]; got != "%grand larceny%" {
		t.Errorf("Expected pattern %%grand larceny%%, got %v", got)
	}
}

func TestSubstringEscapesWildcards(t *testing.T) {
	// Input containing LIKE metacharacters must match only literally.
	b := New()
	b.Substring("ct.crime_type", "50%_test")

	want := `%50\%\_test%`
	if got := b.Args()[0]; got != want {
		t.Errorf("Expected pattern %q, got %v", want, got)
	}
}

func TestEscapeWildcards(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "burglary", "burglary"},
		{"percent", "50%", `50\%`},
		{"underscore", "a_b", `a\_b`},
		{"backslash", `a\b`, `a\\b`},
		{"backslash before percent", `\%`, `\\\%`},
		{"mixed", "50%_test", `50\%\_test`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeWildcards(tt.input); got != tt.want {
				t.Errorf("EscapeWildcards(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRangeBoundsInclusive(t *testing.T) {
	b := New()
	b.AtLeast("i.occurred_date", "2023-01-01")
	b.AtMost("i.occurred_date", "2023-12-31")

	want := "WHERE i.occurred_date >= $1 AND i.occurred_date <= $2"
	if got := b.WhereClause(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestVictimExistsSingleSubquery(t *testing.T) {
	b := New()
	b.Equal("i.status", "Open")
	b.VictimExists("Female", "25-44", "")

	clause := b.WhereClause()
	if strings.Count(clause, "EXISTS") != 1 {
		t.Errorf("Expected exactly one EXISTS subquery, got %q", clause)
	}
	if !strings.Contains(clause, "v.incident_id = i.incident_id") {
		t.Errorf("Expected subquery scoped to the parent incident, got %q", clause)
	}
	if !strings.Contains(clause, "v.gender = $2 AND v.age_grp = $3") {
		t.Errorf("Expected combined demographic conditions, got %q", clause)
	}
	if strings.Contains(clause, "v.race") {
		t.Errorf("Unsupplied ethnicity must add no condition, got %q", clause)
	}
}

func TestVictimExistsAllFields(t *testing.T) {
	b := New()
	b.VictimExists("Male", "18-24", "Asian")

	wantArgs := []any{"Male", "18-24", "Asian"}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("Expected args %v, got %v", wantArgs, b.Args())
	}
}

func TestVictimMatch(t *testing.T) {
	b := New()
	if got := b.VictimMatch("", "", ""); got != "TRUE" {
		t.Errorf("Expected TRUE with no demographics, got %q", got)
	}
	if len(b.Args()) != 0 {
		t.Errorf("Expected no bound args, got %v", b.Args())
	}

	got := b.VictimMatch("Female", "", "Asian")
	want := "v.gender = $1 AND v.race = $2"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if b.WhereClause() != "" {
		t.Errorf("VictimMatch must not add a clause, got %q", b.WhereClause())
	}
}

func TestArgAfterPredicates(t *testing.T) {
	// LIMIT/OFFSET bind through the same builder after the count query
	// has consumed the predicate args.
	b := New()
	b.Equal("i.status", "Closed")

	if got := b.Arg(20); got != "$2" {
		t.Errorf("Expected $2 for limit, got %q", got)
	}
	if got := b.Arg(40); got != "$3" {
		t.Errorf("Expected $3 for offset, got %q", got)
	}

	wantArgs := []any{"Closed", 20, 40}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("Expected args %v, got %v", wantArgs, b.Args())
	}
}
