// ABOUTME: People API handlers
// ABOUTME: Person CRUD plus touchpoint logging with optional follow-up generation
package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := db.ListPeople(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list people: %v", err)
		return
	}
	if people == nil {
		people = []models.Person{}
	}
	writeJSON(w, http.StatusOK, people)
}

type createPersonRequest struct {
	Name                  string `json:"name"`
	CompanyName           string `json:"company_name"`
	Title                 string `json:"title"`
	LinkedInURL           string `json:"linkedin_url"`
	Relationship          string `json:"relationship"`
	WhyReachedOut         string `json:"why_reached_out"`
	SponsorConfidence     string `json:"sponsor_confidence"`
	Status                string `json:"status"`
	OutreachChannels      string `json:"outreach_channels"`
	Links                 string `json:"links"`
	CreateInitialFollowup bool   `json:"create_initial_followup"`
	InitialFollowupDays   int    `json:"initial_followup_days"`
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.CompanyName == "" {
		writeError(w, http.StatusBadRequest, "company_name is required")
		return
	}

	company, err := db.FindOrCreateCompany(s.db, req.CompanyName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve company: %v", err)
		return
	}

	person := &models.Person{
		CompanyID:         company.ID,
		Name:              req.Name,
		Title:             req.Title,
		LinkedInURL:       req.LinkedInURL,
		Relationship:      req.Relationship,
		WhyReachedOut:     req.WhyReachedOut,
		SponsorConfidence: req.SponsorConfidence,
		Status:            req.Status,
		OutreachChannels:  req.OutreachChannels,
		Links:             req.Links,
	}
	if err := db.CreatePerson(s.db, person); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create person: %v", err)
		return
	}

	if req.CreateInitialFollowup {
		days := req.InitialFollowupDays
		if days <= 0 {
			days = 2
		}
		due := time.Now().In(dates.Location()).AddDate(0, 0, days).Format("2006-01-02")
		followUp := &models.FollowUp{PersonID: person.ID, DueDate: due, Action: "Follow Up"}
		if err := db.CreateFollowUp(s.db, followUp); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create initial follow-up: %v", err)
			return
		}
	}

	created, err := db.GetPerson(s.db, person.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load created person: %v", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) personID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid person id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := s.personID(w, r)
	if !ok {
		return
	}

	person, err := db.GetPerson(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load person: %v", err)
		return
	}
	if person == nil {
		writeError(w, http.StatusNotFound, "person not found")
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// updatePersonRequest uses pointers so a partial body (commonly just a
// status flip) leaves the other fields alone.
type updatePersonRequest struct {
	Name              *string `json:"name"`
	CompanyName       *string `json:"company_name"`
	Title             *string `json:"title"`
	LinkedInURL       *string `json:"linkedin_url"`
	Relationship      *string `json:"relationship"`
	WhyReachedOut     *string `json:"why_reached_out"`
	SponsorConfidence *string `json:"sponsor_confidence"`
	Status            *string `json:"status"`
	OutreachChannels  *string `json:"outreach_channels"`
	Links             *string `json:"links"`
}

func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := s.personID(w, r)
	if !ok {
		return
	}

	person, err := db.GetPerson(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load person: %v", err)
		return
	}
	if person == nil {
		writeError(w, http.StatusNotFound, "person not found")
		return
	}

	var req updatePersonRequest
	if !readJSON(w, r, &req) {
		return
	}

	if req.CompanyName != nil {
		company, err := db.FindOrCreateCompany(s.db, *req.CompanyName)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to resolve company: %v", err)
			return
		}
		person.CompanyID = company.ID
	}
	if req.Name != nil {
		person.Name = *req.Name
	}
	if req.Title != nil {
		person.Title = *req.Title
	}
	if req.LinkedInURL != nil {
		person.LinkedInURL = *req.LinkedInURL
	}
	if req.Relationship != nil {
		person.Relationship = *req.Relationship
	}
	if req.WhyReachedOut != nil {
		person.WhyReachedOut = *req.WhyReachedOut
	}
	if req.SponsorConfidence != nil {
		person.SponsorConfidence = *req.SponsorConfidence
	}
	if req.OutreachChannels != nil {
		person.OutreachChannels = *req.OutreachChannels
	}
	if req.Links != nil {
		person.Links = *req.Links
	}

	closing := false
	if req.Status != nil {
		closing = *req.Status == models.StatusClosed && person.Status != models.StatusClosed
		person.Status = *req.Status
	}

	if err := db.UpdatePerson(s.db, id, person); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update person: %v", err)
		return
	}
	if closing {
		// Closing a person also retires their open follow-ups.
		if err := db.ClosePerson(s.db, id); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to close follow-ups: %v", err)
			return
		}
	}

	updated, err := db.GetPerson(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load updated person: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := s.personID(w, r)
	if !ok {
		return
	}

	person, err := db.GetPerson(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load person: %v", err)
		return
	}
	if person == nil {
		writeError(w, http.StatusNotFound, "person not found")
		return
	}

	if err := db.DeletePerson(s.db, id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete person: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type createTouchpointRequest struct {
	Date           string `json:"date"`
	Channel        string `json:"channel"`
	Direction      string `json:"direction"`
	Outcome        string `json:"outcome"`
	MessagePreview string `json:"message_preview"`
	NextStepAction string `json:"next_step_action"`
	NextStepDate   string `json:"next_step_date"`
}

func (s *Server) handleAddTouchpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := s.personID(w, r)
	if !ok {
		return
	}

	person, err := db.GetPerson(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load person: %v", err)
		return
	}
	if person == nil {
		writeError(w, http.StatusNotFound, "person not found")
		return
	}

	var req createTouchpointRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Channel == "" {
		writeError(w, http.StatusBadRequest, "channel is required")
		return
	}

	tp := &models.Touchpoint{
		PersonID:       id,
		Channel:        req.Channel,
		Direction:      req.Direction,
		Outcome:        req.Outcome,
		MessagePreview: req.MessagePreview,
		NextStepAction: req.NextStepAction,
	}
	if req.Date != "" {
		parsed, ok := dates.Normalize(req.Date)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid touchpoint date %q", req.Date)
			return
		}
		tp.Date = parsed
	}

	if err := db.CreateTouchpoint(s.db, tp); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create touchpoint: %v", err)
		return
	}

	// A next-step date schedules a follow-up task, unless the thread is
	// being closed out.
	if req.NextStepDate != "" && !models.OutcomeIsClosed(req.Outcome) {
		action := req.NextStepAction
		if action == "" {
			action = "Follow Up"
		}
		followUp := &models.FollowUp{PersonID: id, DueDate: req.NextStepDate, Action: action}
		if err := db.CreateFollowUp(s.db, followUp); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create follow-up: %v", err)
			return
		}
	}

	writeJSON(w, http.StatusCreated, tp)
}
