// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package filters builds safe SQL predicates from optional request
parameters.

# Builder

Every list and aggregate endpoint translates its filter parameters into
a WHERE clause through one Builder:

	b := filters.New()
	b.Equal("i.status", status)
	b.AnyOf("a.borough", boroughs)
	b.Substring("ct.crime_type", crimeType)
	b.AtLeast("i.occurred_date", dateStart)
	b.VictimExists(gender, ageGrp, race)

	countQuery := "SELECT COUNT(*) FROM ... " + b.WhereClause()
	total := queryScalar(countQuery, b.Args()...)

	dataQuery := "SELECT ... " + b.WhereClause() +
		" ORDER BY ... LIMIT " + b.Arg(perPage) + " OFFSET " + b.Arg(offset)
	rows := query(dataQuery, b.Args()...)

Because count and data queries share the same builder, their predicates
and arguments cannot diverge.

# Rules

  - Absent/empty/blank inputs add no predicate.
  - All values bind as positional $N parameters; no value is ever
    interpolated into query text.
  - Substring matches are case-insensitive (ILIKE) with %, _, and \
    escaped, so user text matches only literally.
  - Victim demographic filters compile to a single EXISTS subquery
    scoped to the incident row. Count and list therefore stay in
    row-count parity however many victims match per incident.
*/
package filters
