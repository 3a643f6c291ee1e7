// ABOUTME: Waitlist API handlers
// ABOUTME: Parked companies list, add, and convert-to-person marking
package web

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

func (s *Server) handleListWaitlist(w http.ResponseWriter, r *http.Request) {
	items, err := db.ListWaitlist(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list waitlist: %v", err)
		return
	}
	if items == nil {
		items = []models.WaitlistItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type createWaitlistRequest struct {
	Company           string `json:"company"`
	Name              string `json:"name"`
	Priority          string `json:"priority"`
	Reason            string `json:"reason"`
	PlannedActionDate string `json:"planned_action_date"`
	OutreachChannels  string `json:"outreach_channels"`
	Links             string `json:"links"`
}

func (s *Server) handleAddWaitlistItem(w http.ResponseWriter, r *http.Request) {
	var req createWaitlistRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Company == "" {
		writeError(w, http.StatusBadRequest, "company is required")
		return
	}

	item := &models.WaitlistItem{
		Company:           req.Company,
		Name:              req.Name,
		Priority:          req.Priority,
		Reason:            req.Reason,
		PlannedActionDate: req.PlannedActionDate,
		OutreachChannels:  req.OutreachChannels,
		Links:             req.Links,
	}
	if err := db.CreateWaitlistItem(s.db, item); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create waitlist item: %v", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleConvertWaitlistItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid waitlist id")
		return
	}

	item, err := db.GetWaitlistItem(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load waitlist item: %v", err)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "waitlist item not found")
		return
	}

	if err := db.ConvertWaitlistItem(s.db, id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to convert waitlist item: %v", err)
		return
	}
	item.Status = models.WaitlistConverted
	writeJSON(w, http.StatusOK, item)
}
