// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pagination

import (
	"net/url"
	"strconv"

	"github.com/yl5961/crimewatch/models"
)

// PerPage is the fixed page size for incident lists.
const PerPage = 20

// windowRadius is how many page numbers appear on each side of the
// current page.
const windowRadius = 3

// Page holds the derived pagination state for one list request.
type Page struct {
	Number     int
	PerPage    int
	Total      int
	TotalPages int
	Offset     int
	Numbers    []int
}

// ParsePage parses a raw page parameter, clamping to a minimum of 1.
// Non-numeric input counts as page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// New computes pagination state for a 1-based page number (clamped to
// minimum 1), a page size, and a total row count.
//
//	TotalPages = max(ceil(total/perPage), 1)
//	Offset     = (page-1)*perPage
//
// Numbers is a symmetric window of radius 3 around the current page,
// clamped to [1, TotalPages]. It is empty when the page lies more
// than the radius beyond the last page.
func New(page, perPage, total int) Page {
	if page < 1 {
		page = 1
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	start := page - windowRadius
	if start < 1 {
		start = 1
	}
	end := page + windowRadius
	if end > totalPages {
		end = totalPages
	}
	// A page far past the last one leaves start > end; the window is
	// then empty rather than a negative-capacity slice.
	numbers := []int{}
	for n := start; n <= end; n++ {
		numbers = append(numbers, n)
	}

	return Page{
		Number:     page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Offset:     (page - 1) * perPage,
		Numbers:    numbers,
	}
}

// URL rebuilds path?query with every currently active filter preserved
// (multi-valued filters like repeated boroughs included) and only the
// page parameter overridden.
func URL(path string, query url.Values, page int) string {
	q := url.Values{}
	for k, vs := range query {
		if k == "page" {
			continue
		}
		q[k] = append([]string(nil), vs...)
	}
	q.Set("page", strconv.Itoa(page))
	return path + "?" + q.Encode()
}

// Links renders the window as page links for the current filters.
func (p Page) Links(path string, query url.Values) []models.PageLink {
	links := make([]models.PageLink, 0, len(p.Numbers))
	for _, n := range p.Numbers {
		links = append(links, models.PageLink{Number: n, URL: URL(path, query, n)})
	}
	return links
}
