// ABOUTME: Dashboard API handlers
// ABOUTME: Today board plus task done/snooze/close actions
package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
)

func (s *Server) handleDashboardToday(w http.ResponseWriter, r *http.Request) {
	board, err := db.DashboardToday(s.db, dates.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build today board: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func taskID(w http.ResponseWriter, r *http.Request) (ulid.ULID, bool) {
	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return ulid.ULID{}, false
	}
	return id, true
}

func writeTaskError(w http.ResponseWriter, err error, action string) {
	if errors.Is(err, db.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "failed to %s task: %v", action, err)
}

func (s *Server) handleTaskDone(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := db.MarkFollowUpDone(s.db, id); err != nil {
		writeTaskError(w, err, "complete")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "done"})
}

func (s *Server) handleTaskSnooze(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	days := 2
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	newDate, err := db.SnoozeFollowUp(s.db, id, days)
	if err != nil {
		writeTaskError(w, err, "snooze")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "snoozed", "due_date": newDate})
}

func (s *Server) handleTaskClose(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := db.CloseFollowUp(s.db, id); err != nil {
		writeTaskError(w, err, "close")
		return
	}
	if reason := r.URL.Query().Get("reason"); reason != "" {
		log.Printf("task %s closed: %s", id, reason)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
