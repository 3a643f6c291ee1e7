// ABOUTME: Companies API handler
// ABOUTME: Serves aggregate company summaries with derived touch activity
package web

import (
	"net/http"

	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	summaries, err := db.ListCompanySummaries(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list companies: %v", err)
		return
	}
	if summaries == nil {
		summaries = []models.CompanySummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}
