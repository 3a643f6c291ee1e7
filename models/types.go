// ABOUTME: Data models for outreach tracking entities
// ABOUTME: Defines Company, Person, Touchpoint, FollowUp, and WaitlistItem structs
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type Company struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	SponsorStatus string    `json:"sponsor_status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CompanySummary is the aggregate view served by GET /api/companies:
// a company plus derived touch activity across all of its contacts.
type CompanySummary struct {
	Company
	ContactCount     int             `json:"contact_count"`
	LastTouchDate    *time.Time      `json:"last_touch_date"`
	NextFollowUpDate *string         `json:"next_follow_up_date"`
	Contacts         []PersonSummary `json:"contacts,omitempty"`
}

type PersonSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Title string    `json:"title,omitempty"`
}

type Person struct {
	ID                uuid.UUID `json:"id"`
	CompanyID         uuid.UUID `json:"company_id"`
	Name              string    `json:"name"`
	Title             string    `json:"title,omitempty"`
	LinkedInURL       string    `json:"linkedin_url,omitempty"`
	Relationship      string    `json:"relationship"`
	WhyReachedOut     string    `json:"why_reached_out"`
	SponsorConfidence string    `json:"sponsor_confidence"`
	Status            string    `json:"status"`
	OutreachChannels  string    `json:"outreach_channels,omitempty"`
	Links             string    `json:"links,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Populated on detail reads. Touchpoints are in chronological order,
	// guaranteed by the storage layer (date, then ULID).
	Company     *Company     `json:"company,omitempty"`
	Touchpoints []Touchpoint `json:"touchpoints"`
	FollowUps   []FollowUp   `json:"follow_ups"`
}

type Touchpoint struct {
	ID             ulid.ULID `json:"id"`
	PersonID       uuid.UUID `json:"person_id"`
	Date           time.Time `json:"date"`
	Channel        string    `json:"channel"`
	Direction      string    `json:"direction"`
	Outcome        string    `json:"outcome,omitempty"`
	MessagePreview string    `json:"message_preview,omitempty"`
	NextStepAction string    `json:"next_step_action,omitempty"`
}

type FollowUp struct {
	ID       ulid.ULID `json:"id"`
	PersonID uuid.UUID `json:"person_id"`
	DueDate  string    `json:"due_date"` // YYYY-MM-DD
	Action   string    `json:"action"`
	Status   string    `json:"status"`
}

type WaitlistItem struct {
	ID                uuid.UUID `json:"id"`
	Company           string    `json:"company"`
	Name              string    `json:"name,omitempty"`
	Priority          string    `json:"priority"`
	Reason            string    `json:"reason,omitempty"`
	PlannedActionDate string    `json:"planned_action_date,omitempty"`
	Status            string    `json:"status"`
	OutreachChannels  string    `json:"outreach_channels,omitempty"`
	Links             string    `json:"links,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Person lifecycle statuses.
const (
	StatusOpen    = "open"
	StatusWaiting = "waiting"
	StatusClosed  = "closed"
)

// Relationship categories.
const (
	RelationshipCold      = "cold"
	RelationshipWarm      = "warm"
	RelationshipRecruiter = "recruiter"
	RelationshipReferral  = "referral"
	RelationshipAlumni    = "alumni"
)

// Touchpoint outcomes.
const (
	OutcomeSent          = "sent"
	OutcomeReplied       = "replied"
	OutcomeMeetingBooked = "meeting_booked"
	OutcomeGhosted       = "ghosted"
	OutcomeClosed        = "closed"
)

// Touchpoint directions.
const (
	DirectionOutbound = "outbound"
	DirectionInbound  = "inbound"
	DirectionOther    = "other"
)

// Follow-up statuses.
const (
	FollowUpOpen   = "open"
	FollowUpDone   = "done"
	FollowUpClosed = "closed"
)

// Sponsor status tri-state, used for both companies and people.
const (
	SponsorYes     = "yes"
	SponsorNo      = "no"
	SponsorUnknown = "unknown"
)

// Waitlist priorities and statuses.
const (
	PriorityA = "A"
	PriorityB = "B"
	PriorityC = "C"

	WaitlistActive    = "active"
	WaitlistConverted = "converted"
	WaitlistDropped   = "dropped"
)
