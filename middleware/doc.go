// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /incidents", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms),
correlated by a per-request UUID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Incident not found")

# Validation Failures

Form submissions that violate domain constraints re-render with every
applicable message and the original input preserved:

	middleware.ValidationFailed(w, errs, form)

The caller must not have performed any write before calling this.

# Redirects

Successful form POSTs redirect with 303 See Other:

	middleware.SeeOther(w, r, "/admin/42")
*/
package middleware
