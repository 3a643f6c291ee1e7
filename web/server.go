// ABOUTME: REST API server for the outreach tracker
// ABOUTME: JSON endpoints under /api with a uniform error envelope
package web

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/harperreed/outreach/radar"
)

type Server struct {
	db    *sql.DB
	radar *radar.Service
	mux   *http.ServeMux
}

func NewServer(database *sql.DB, radarSvc *radar.Service) *Server {
	s := &Server{
		db:    database,
		radar: radarSvc,
		mux:   http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /api/people", s.handleListPeople)
	s.mux.HandleFunc("POST /api/people", s.handleCreatePerson)
	s.mux.HandleFunc("GET /api/people/{id}", s.handleGetPerson)
	s.mux.HandleFunc("PUT /api/people/{id}", s.handleUpdatePerson)
	s.mux.HandleFunc("DELETE /api/people/{id}", s.handleDeletePerson)
	s.mux.HandleFunc("POST /api/people/{id}/touchpoints", s.handleAddTouchpoint)

	s.mux.HandleFunc("GET /api/companies", s.handleListCompanies)

	s.mux.HandleFunc("GET /api/waitlist", s.handleListWaitlist)
	s.mux.HandleFunc("POST /api/waitlist", s.handleAddWaitlistItem)
	s.mux.HandleFunc("POST /api/waitlist/{id}/convert", s.handleConvertWaitlistItem)

	s.mux.HandleFunc("GET /api/dashboard/today", s.handleDashboardToday)
	s.mux.HandleFunc("POST /api/dashboard/tasks/{id}/done", s.handleTaskDone)
	s.mux.HandleFunc("POST /api/dashboard/tasks/{id}/snooze", s.handleTaskSnooze)
	s.mux.HandleFunc("POST /api/dashboard/tasks/{id}/close", s.handleTaskClose)

	s.mux.HandleFunc("GET /api/analytics/weekly", s.handleWeeklyAnalytics)
	s.mux.HandleFunc("GET /api/radar", s.handleRadar)

	return s
}

// Handler exposes the route table, used directly by httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting API server at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if status >= http.StatusInternalServerError {
		log.Printf("api error: %s", msg)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: %v", err)
		return false
	}
	return true
}
