// Copyright (c) 2025 The CrimeWatch Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/yl5961/crimewatch/handlers"
	"github.com/yl5961/crimewatch/middleware"
)

func NewRouter(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	incidentHandler := handlers.NewIncidentHandler(db)
	adminHandler := handlers.NewAdminHandler(db)
	analysisHandler := handlers.NewAnalysisHandler(db)
	recsHandler := handlers.NewRecommendationsHandler(db)
	miscHandler := handlers.NewMiscHandler(db)

	// Health check
	mux.HandleFunc("GET /health", miscHandler.Health)

	// Public browsing. The root path is the incident list.
	mux.HandleFunc("GET /{$}", middleware.WithLogging(incidentHandler.List))
	mux.HandleFunc("GET /incidents", middleware.WithLogging(incidentHandler.List))
	mux.HandleFunc("GET /incidents/analysis", middleware.WithLogging(analysisHandler.Report))
	mux.HandleFunc("GET /incident/{id}", middleware.WithLogging(incidentHandler.Detail))
	mux.HandleFunc("GET /recommendations", middleware.WithLogging(recsHandler.Report))

	// Administration. Literal segments win over /admin/{id}, so /admin/new
	// and /admin/system route to their own handlers.
	mux.HandleFunc("GET /admin", middleware.WithLogging(adminHandler.List))
	mux.HandleFunc("GET /admin/{id}", middleware.WithLogging(adminHandler.Detail))
	mux.HandleFunc("POST /admin/{id}", middleware.WithLogging(adminHandler.Detail))
	mux.HandleFunc("GET /admin/new", middleware.WithLogging(adminHandler.NewIncident))
	mux.HandleFunc("POST /admin/new", middleware.WithLogging(adminHandler.NewIncident))
	mux.HandleFunc("GET /admin/system", middleware.WithLogging(adminHandler.System))
	mux.HandleFunc("POST /admin/system", middleware.WithLogging(adminHandler.System))

	// Demo page and its name list
	mux.HandleFunc("GET /another", middleware.WithLogging(miscHandler.Another))
	mux.HandleFunc("POST /add", middleware.WithLogging(miscHandler.AddName))
	mux.HandleFunc("GET /login", middleware.WithLogging(miscHandler.Login))

	return mux
}
