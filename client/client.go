// ABOUTME: Typed HTTP client for the outreach REST API
// ABOUTME: Wraps every endpoint and decodes the uniform error envelope
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/outreach/analytics"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/radar"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
			envelope.Error = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

type CreatePersonParams struct {
	Name                  string `json:"name"`
	CompanyName           string `json:"company_name"`
	Title                 string `json:"title,omitempty"`
	LinkedInURL           string `json:"linkedin_url,omitempty"`
	Relationship          string `json:"relationship,omitempty"`
	WhyReachedOut         string `json:"why_reached_out,omitempty"`
	SponsorConfidence     string `json:"sponsor_confidence,omitempty"`
	Status                string `json:"status,omitempty"`
	OutreachChannels      string `json:"outreach_channels,omitempty"`
	Links                 string `json:"links,omitempty"`
	CreateInitialFollowup bool   `json:"create_initial_followup"`
	InitialFollowupDays   int    `json:"initial_followup_days,omitempty"`
}

type UpdatePersonParams struct {
	Name              *string `json:"name,omitempty"`
	CompanyName       *string `json:"company_name,omitempty"`
	Title             *string `json:"title,omitempty"`
	LinkedInURL       *string `json:"linkedin_url,omitempty"`
	Relationship      *string `json:"relationship,omitempty"`
	WhyReachedOut     *string `json:"why_reached_out,omitempty"`
	SponsorConfidence *string `json:"sponsor_confidence,omitempty"`
	Status            *string `json:"status,omitempty"`
	OutreachChannels  *string `json:"outreach_channels,omitempty"`
	Links             *string `json:"links,omitempty"`
}

type TouchpointParams struct {
	Date           string `json:"date,omitempty"`
	Channel        string `json:"channel"`
	Direction      string `json:"direction,omitempty"`
	Outcome        string `json:"outcome,omitempty"`
	MessagePreview string `json:"message_preview,omitempty"`
	NextStepAction string `json:"next_step_action,omitempty"`
	NextStepDate   string `json:"next_step_date,omitempty"`
}

type WaitlistParams struct {
	Company           string `json:"company"`
	Name              string `json:"name,omitempty"`
	Priority          string `json:"priority,omitempty"`
	Reason            string `json:"reason,omitempty"`
	PlannedActionDate string `json:"planned_action_date,omitempty"`
	OutreachChannels  string `json:"outreach_channels,omitempty"`
	Links             string `json:"links,omitempty"`
}

func (c *Client) ListPeople(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	err := c.do(ctx, http.MethodGet, "/api/people", nil, &people)
	return people, err
}

func (c *Client) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	var person models.Person
	if err := c.do(ctx, http.MethodGet, "/api/people/"+id.String(), nil, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (c *Client) CreatePerson(ctx context.Context, params CreatePersonParams) (*models.Person, error) {
	var person models.Person
	if err := c.do(ctx, http.MethodPost, "/api/people", params, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (c *Client) UpdatePerson(ctx context.Context, id uuid.UUID, params UpdatePersonParams) (*models.Person, error) {
	var person models.Person
	if err := c.do(ctx, http.MethodPut, "/api/people/"+id.String(), params, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (c *Client) DeletePerson(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/people/"+id.String(), nil, nil)
}

func (c *Client) AddTouchpoint(ctx context.Context, personID uuid.UUID, params TouchpointParams) (*models.Touchpoint, error) {
	var tp models.Touchpoint
	if err := c.do(ctx, http.MethodPost, "/api/people/"+personID.String()+"/touchpoints", params, &tp); err != nil {
		return nil, err
	}
	return &tp, nil
}

func (c *Client) ListCompanies(ctx context.Context) ([]models.CompanySummary, error) {
	var companies []models.CompanySummary
	err := c.do(ctx, http.MethodGet, "/api/companies", nil, &companies)
	return companies, err
}

func (c *Client) ListWaitlist(ctx context.Context) ([]models.WaitlistItem, error) {
	var items []models.WaitlistItem
	err := c.do(ctx, http.MethodGet, "/api/waitlist", nil, &items)
	return items, err
}

func (c *Client) AddWaitlistItem(ctx context.Context, params WaitlistParams) (*models.WaitlistItem, error) {
	var item models.WaitlistItem
	if err := c.do(ctx, http.MethodPost, "/api/waitlist", params, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) ConvertWaitlistItem(ctx context.Context, id uuid.UUID) (*models.WaitlistItem, error) {
	var item models.WaitlistItem
	if err := c.do(ctx, http.MethodPost, "/api/waitlist/"+id.String()+"/convert", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DashboardToday(ctx context.Context) (*db.TodayBoard, error) {
	var board db.TodayBoard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/today", nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) TaskDone(ctx context.Context, id ulid.ULID) error {
	return c.do(ctx, http.MethodPost, "/api/dashboard/tasks/"+id.String()+"/done", nil, nil)
}

func (c *Client) TaskSnooze(ctx context.Context, id ulid.ULID, days int) error {
	path := "/api/dashboard/tasks/" + id.String() + "/snooze"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) TaskClose(ctx context.Context, id ulid.ULID) error {
	return c.do(ctx, http.MethodPost, "/api/dashboard/tasks/"+id.String()+"/close", nil, nil)
}

func (c *Client) WeeklyAnalytics(ctx context.Context, weekStart string) (*analytics.WeeklyReport, error) {
	path := "/api/analytics/weekly"
	if weekStart != "" {
		path += "?week_start=" + url.QueryEscape(weekStart)
	}
	var report analytics.WeeklyReport
	if err := c.do(ctx, http.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) Radar(ctx context.Context, queryText string) ([]radar.NewsItem, error) {
	path := "/api/radar"
	if queryText != "" {
		path += "?query=" + url.QueryEscape(queryText)
	}
	var items []radar.NewsItem
	err := c.do(ctx, http.MethodGet, path, nil, &items)
	return items, err
}
