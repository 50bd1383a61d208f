// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filters

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Builder accumulates SQL predicate fragments and their bound arguments,
// numbering PostgreSQL placeholders sequentially. Values never appear in
// the query text; only the predicate structure (which clauses are
// present) is dynamic.
//
// Absent, empty, or blank inputs contribute no predicate. The same
// builder feeds both the count query and the data query of a list
// endpoint so the two can never diverge.
type Builder struct {
	clauses []string
	args    []any
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Arg binds v as the next positional argument and returns its
// placeholder, e.g. "$3". Used directly for LIMIT/OFFSET and by the
// predicate helpers below.
func (b *Builder) Arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Add appends a raw predicate fragment. The fragment must reference
// placeholders obtained from Arg, never literal values.
func (b *Builder) Add(fragment string) {
	b.clauses = append(b.clauses, fragment)
}

// Equal adds "col = $n" unless value is empty.
func (b *Builder) Equal(col, value string) {
	if value == "" {
		return
	}
	b.Add(col + " = " + b.Arg(value))
}

// AnyOf adds a set-membership predicate "col = ANY($n)" unless values is
// empty. The whole set binds as a single array argument.
func (b *Builder) AnyOf(col string, values []string) {
	if len(values) == 0 {
		return
	}
	b.Add(col + " = ANY(" + b.Arg(pq.Array(values)) + ")")
}

// Substring adds a case-insensitive substring match unless value is
// blank. Wildcard characters in the user's text are escaped so the match
// is always literal.
func (b *Builder) Substring(col, value string) {
	clean := strings.ToLower(strings.TrimSpace(value))
	if clean == "" {
		return
	}
	pattern := "%" + EscapeWildcards(clean) + "%"
	b.Add(col + ` ILIKE ` + b.Arg(pattern) + ` ESCAPE '\'`)
}

// AtLeast adds an inclusive lower bound "col >= $n" unless value is
// empty. The raw string binds against the typed column; the store
// coerces or rejects it (list filters perform no format validation).
func (b *Builder) AtLeast(col, value string) {
	if value == "" {
		return
	}
	b.Add(col + " >= " + b.Arg(value))
}

// AtMost adds an inclusive upper bound "col <= $n" unless value is empty.
func (b *Builder) AtMost(col, value string) {
	if value == "" {
		return
	}
	b.Add(col + " <= " + b.Arg(value))
}

// VictimExists restricts incidents (table alias "i") to those with at
// least one victim matching every supplied demographic value. All
// conditions live in a single EXISTS subquery scoped to the parent row:
// a plain join against victim would multiply an incident once per
// matching victim, corrupting both counts and pagination. No-op when no
// value is supplied.
func (b *Builder) VictimExists(gender, ageGrp, race string) {
	match := b.VictimMatch(gender, ageGrp, race)
	if match == "TRUE" {
		return
	}
	b.Add("EXISTS (SELECT 1 FROM victim v WHERE v.incident_id = i.incident_id AND " +
		match + ")")
}

// VictimMatch builds the victim-demographic predicate (table alias "v")
// without adding it as a WHERE clause, binding any supplied values on
// the builder. Returns "TRUE" when no value is supplied, so callers can
// embed the result unconditionally (e.g. in a FILTER clause, where an
// empty demographic means every incident matches).
func (b *Builder) VictimMatch(gender, ageGrp, race string) string {
	var conds []string
	if gender != "" {
		conds = append(conds, "v.gender = "+b.Arg(gender))
	}
	if ageGrp != "" {
		conds = append(conds, "v.age_grp = "+b.Arg(ageGrp))
	}
	if race != "" {
		conds = append(conds, "v.race = "+b.Arg(race))
	}
	if len(conds) == 0 {
		return "TRUE"
	}
	return strings.Join(conds, " AND ")
}

// WhereClause returns the assembled WHERE clause, or "" when no
// predicate was added.
func (b *Builder) WhereClause() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.clauses, " AND ")
}

// Args returns the bound arguments in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}

// EscapeWildcards escapes the LIKE wildcard characters (and the escape
// character itself) in s so it matches only as a literal substring. The
// escape character must be handled first.
func EscapeWildcards(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
