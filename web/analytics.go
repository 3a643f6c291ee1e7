// ABOUTME: Analytics API handler
// ABOUTME: Weekly outreach report with optional week_start anchor
package web

import (
	"net/http"
	"time"

	"github.com/harperreed/outreach/analytics"
	"github.com/harperreed/outreach/dates"
)

func (s *Server) handleWeeklyAnalytics(w http.ResponseWriter, r *http.Request) {
	anchor := time.Now().In(dates.Location())
	if raw := r.URL.Query().Get("week_start"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, dates.Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, "week_start must be YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	report, err := analytics.Weekly(s.db, anchor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute weekly analytics: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
