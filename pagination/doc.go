// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pagination computes page counts, offsets, and windowed page
links for the incident lists.

# Usage

	page := pagination.New(pagination.ParsePage(r.URL.Query().Get("page")),
		pagination.PerPage, total)

	rows := query(dataQuery, ..., page.PerPage, page.Offset)
	links := page.Links(r.URL.Path, r.URL.Query())

# Arithmetic

TotalPages is max(ceil(total/perPage), 1) - an empty result still has
one (empty) page. Offset is (page-1)*perPage with page clamped to a
minimum of 1; pages past the end simply return no rows.

# Window

Numbers is a symmetric window of radius 3 around the current page,
clamped to [1, TotalPages]. For total_pages=10, page=5 the window is
[2 3 4 5 6 7 8].

# Page URLs

URL rebuilds the request's query string with all active filters intact -
repeated parameters (multiple boroughs) survive re-serialization - and
overrides only the page number.
*/
package pagination
