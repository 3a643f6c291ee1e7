// ABOUTME: People MCP tool handlers
// ABOUTME: Implements add_person, find_people, and log_touchpoint tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/query"
)

type PeopleHandlers struct {
	db *sql.DB
}

func NewPeopleHandlers(database *sql.DB) *PeopleHandlers {
	return &PeopleHandlers{db: database}
}

type AddPersonInput struct {
	Name           string `json:"name" jsonschema:"Person name (required)"`
	CompanyName    string `json:"company_name" jsonschema:"Company name (required, looked up or created)"`
	Title          string `json:"title,omitempty" jsonschema:"Job title"`
	Relationship   string `json:"relationship,omitempty" jsonschema:"Relationship category: cold, warm, recruiter, referral, or alumni"`
	WhyReachedOut  string `json:"why_reached_out,omitempty" jsonschema:"Why this person is worth contacting"`
	LinkedInURL    string `json:"linkedin_url,omitempty" jsonschema:"LinkedIn profile URL"`
	FollowUpInDays int    `json:"follow_up_in_days,omitempty" jsonschema:"Schedule an initial follow-up this many days out (0 disables)"`
}

type PersonOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CompanyName  string `json:"company_name,omitempty"`
	Title        string `json:"title,omitempty"`
	Relationship string `json:"relationship"`
	Status       string `json:"status"`
	LastTouch    string `json:"last_touch,omitempty"`
	NextFollowUp string `json:"next_follow_up,omitempty"`
	CreatedAt    string `json:"created_at"`
}

func personToOutput(person *models.Person) PersonOutput {
	out := PersonOutput{
		ID:           person.ID.String(),
		Name:         person.Name,
		Title:        person.Title,
		Relationship: person.Relationship,
		Status:       person.Status,
		CreatedAt:    person.CreatedAt.Format(time.RFC3339),
	}
	if person.Company != nil {
		out.CompanyName = person.Company.Name
	}
	if touch := query.LastTouch(*person); touch != nil {
		out.LastTouch = dates.FormatTime(touch.Date, dates.LayoutDate)
	}
	if next := query.NextFollowUp(*person); next != nil {
		out.NextFollowUp = next.DueDate
	}
	return out
}

func (h *PeopleHandlers) AddPerson(_ context.Context, request *mcp.CallToolRequest, input AddPersonInput) (*mcp.CallToolResult, PersonOutput, error) {
	if input.Name == "" {
		return nil, PersonOutput{}, fmt.Errorf("name is required")
	}
	if input.CompanyName == "" {
		return nil, PersonOutput{}, fmt.Errorf("company_name is required")
	}

	company, err := db.FindOrCreateCompany(h.db, input.CompanyName)
	if err != nil {
		return nil, PersonOutput{}, fmt.Errorf("failed to resolve company: %w", err)
	}

	person := &models.Person{
		CompanyID:     company.ID,
		Name:          input.Name,
		Title:         input.Title,
		Relationship:  input.Relationship,
		WhyReachedOut: input.WhyReachedOut,
		LinkedInURL:   input.LinkedInURL,
	}
	if err := db.CreatePerson(h.db, person); err != nil {
		return nil, PersonOutput{}, fmt.Errorf("failed to create person: %w", err)
	}

	if input.FollowUpInDays > 0 {
		due := time.Now().In(dates.Location()).AddDate(0, 0, input.FollowUpInDays).Format("2006-01-02")
		followUp := &models.FollowUp{PersonID: person.ID, DueDate: due, Action: "Follow Up"}
		if err := db.CreateFollowUp(h.db, followUp); err != nil {
			return nil, PersonOutput{}, fmt.Errorf("failed to schedule follow-up: %w", err)
		}
	}

	created, err := db.GetPerson(h.db, person.ID)
	if err != nil {
		return nil, PersonOutput{}, fmt.Errorf("failed to load created person: %w", err)
	}
	return nil, personToOutput(created), nil
}

type FindPeopleInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Search query (matches person or company name)"`
	Status string `json:"status,omitempty" jsonschema:"Filter by status: all, open, waiting, or closed"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindPeopleOutput struct {
	People []PersonOutput `json:"people"`
}

func (h *PeopleHandlers) FindPeople(_ context.Context, request *mcp.CallToolRequest, input FindPeopleInput) (*mcp.CallToolResult, FindPeopleOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	people, err := db.ListPeople(h.db)
	if err != nil {
		return nil, FindPeopleOutput{}, fmt.Errorf("failed to list people: %w", err)
	}

	matched := query.Filter(people, input.Query, input.Status)
	if len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]PersonOutput, len(matched))
	for i, person := range matched {
		result[i] = personToOutput(&person)
	}
	return nil, FindPeopleOutput{People: result}, nil
}

type LogTouchpointInput struct {
	PersonID       string `json:"person_id" jsonschema:"Person ID (required)"`
	Channel        string `json:"channel" jsonschema:"Channel used: email, linkedin, inmail, etc. (required)"`
	Outcome        string `json:"outcome,omitempty" jsonschema:"Outcome: sent, replied, meeting_booked, ghosted, or closed"`
	Direction      string `json:"direction,omitempty" jsonschema:"Direction: outbound, inbound, or other (inferred from outcome when omitted)"`
	MessagePreview string `json:"message_preview,omitempty" jsonschema:"First line or summary of the message"`
	NextStepDate   string `json:"next_step_date,omitempty" jsonschema:"Schedule a follow-up on this date (YYYY-MM-DD)"`
	NextStepAction string `json:"next_step_action,omitempty" jsonschema:"What the follow-up should do"`
}

type TouchpointOutput struct {
	ID        string `json:"id"`
	PersonID  string `json:"person_id"`
	Date      string `json:"date"`
	Channel   string `json:"channel"`
	Direction string `json:"direction"`
	Outcome   string `json:"outcome,omitempty"`
}

func (h *PeopleHandlers) LogTouchpoint(_ context.Context, request *mcp.CallToolRequest, input LogTouchpointInput) (*mcp.CallToolResult, TouchpointOutput, error) {
	personID, err := parsePersonID(input.PersonID)
	if err != nil {
		return nil, TouchpointOutput{}, err
	}
	if input.Channel == "" {
		return nil, TouchpointOutput{}, fmt.Errorf("channel is required")
	}

	person, err := db.GetPerson(h.db, personID)
	if err != nil {
		return nil, TouchpointOutput{}, fmt.Errorf("failed to load person: %w", err)
	}
	if person == nil {
		return nil, TouchpointOutput{}, fmt.Errorf("person not found: %s", input.PersonID)
	}

	tp := &models.Touchpoint{
		PersonID:       personID,
		Channel:        input.Channel,
		Direction:      input.Direction,
		Outcome:        input.Outcome,
		MessagePreview: input.MessagePreview,
		NextStepAction: input.NextStepAction,
	}
	if err := db.CreateTouchpoint(h.db, tp); err != nil {
		return nil, TouchpointOutput{}, fmt.Errorf("failed to create touchpoint: %w", err)
	}

	if input.NextStepDate != "" && !models.OutcomeIsClosed(input.Outcome) {
		action := input.NextStepAction
		if action == "" {
			action = "Follow Up"
		}
		followUp := &models.FollowUp{PersonID: personID, DueDate: input.NextStepDate, Action: action}
		if err := db.CreateFollowUp(h.db, followUp); err != nil {
			return nil, TouchpointOutput{}, fmt.Errorf("failed to schedule follow-up: %w", err)
		}
	}

	return nil, TouchpointOutput{
		ID:        tp.ID.String(),
		PersonID:  tp.PersonID.String(),
		Date:      tp.Date.Format(time.RFC3339),
		Channel:   tp.Channel,
		Direction: tp.Direction,
		Outcome:   tp.Outcome,
	}, nil
}
