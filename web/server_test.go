// ABOUTME: HTTP API tests exercising the full request/response cycle
// ABOUTME: Runs handlers against an in-memory database via httptest
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/outreach/analytics"
	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := db.OpenDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	srv := httptest.NewServer(NewServer(database, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createPersonViaAPI(t *testing.T, srv *httptest.Server, name, company string) models.Person {
	t.Helper()
	var person models.Person
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", map[string]any{
		"name":         name,
		"company_name": company,
	}, &person)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return person
}

func TestCreateAndGetPerson(t *testing.T) {
	srv := setupTestServer(t)

	var created models.Person
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", map[string]any{
		"name":                    "Alice Chen",
		"company_name":            "Initech",
		"title":                   "Engineering Manager",
		"relationship":            models.RelationshipWarm,
		"why_reached_out":         "hiring for platform team",
		"links":                   `["https://example.com/profile"]`,
		"create_initial_followup": true,
		"initial_followup_days":   3,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, "Alice Chen", created.Name)
	assert.Equal(t, models.StatusOpen, created.Status)
	require.NotNil(t, created.Company)
	assert.Equal(t, "Initech", created.Company.Name)
	assert.Equal(t, []string{"https://example.com/profile"}, models.DecodeLinks(created.Links))

	require.Len(t, created.FollowUps, 1)
	wantDue := time.Now().In(dates.Location()).AddDate(0, 0, 3).Format("2006-01-02")
	assert.Equal(t, wantDue, created.FollowUps[0].DueDate)
	assert.Equal(t, models.FollowUpOpen, created.FollowUps[0].Status)

	var fetched models.Person
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/people/"+created.ID.String(), nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreatePersonValidation(t *testing.T) {
	srv := setupTestServer(t)

	var errBody map[string]string
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", map[string]any{
		"company_name": "Initech",
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errBody["error"], "name")

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/people", map[string]any{
		"name": "Alice Chen",
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errBody["error"], "company_name")
}

func TestGetPersonNotFound(t *testing.T) {
	srv := setupTestServer(t)

	var errBody map[string]string
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/people/00000000-0000-0000-0000-000000000000", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "person not found", errBody["error"])
}

func TestUpdatePersonClosesFollowUps(t *testing.T) {
	srv := setupTestServer(t)
	person := createPersonViaAPI(t, srv, "Bob Park", "Globex")

	var tp models.Touchpoint
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people/"+person.ID.String()+"/touchpoints", map[string]any{
		"channel":        "email",
		"outcome":        models.OutcomeSent,
		"next_step_date": "2099-01-15",
	}, &tp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var updated models.Person
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/people/"+person.ID.String(), map[string]any{
		"status": models.StatusClosed,
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, models.StatusClosed, updated.Status)
	require.Len(t, updated.FollowUps, 1)
	assert.Equal(t, models.FollowUpClosed, updated.FollowUps[0].Status)
}

func TestAddTouchpointInfersDirection(t *testing.T) {
	srv := setupTestServer(t)
	person := createPersonViaAPI(t, srv, "Carol Diaz", "Hooli")

	var tp models.Touchpoint
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people/"+person.ID.String()+"/touchpoints", map[string]any{
		"channel": "linkedin",
		"outcome": models.OutcomeReplied,
		"date":    "2024-03-12",
	}, &tp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, models.DirectionInbound, tp.Direction)
	// Date-only input is anchored to midday UTC.
	assert.Equal(t, time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC), tp.Date.UTC())
}

func TestAddTouchpointClosedOutcomeSkipsFollowUp(t *testing.T) {
	srv := setupTestServer(t)
	person := createPersonViaAPI(t, srv, "Dan Wu", "Initech")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people/"+person.ID.String()+"/touchpoints", map[string]any{
		"channel":        "email",
		"outcome":        "closed_no_sponsor",
		"next_step_date": "2099-01-15",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var fetched models.Person
	doJSON(t, http.MethodGet, srv.URL+"/api/people/"+person.ID.String(), nil, &fetched)
	assert.Empty(t, fetched.FollowUps)
}

func TestAddTouchpointInvalidDate(t *testing.T) {
	srv := setupTestServer(t)
	person := createPersonViaAPI(t, srv, "Eve Stone", "Globex")

	var errBody map[string]string
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people/"+person.ID.String()+"/touchpoints", map[string]any{
		"channel": "email",
		"date":    "not-a-date",
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errBody["error"], "invalid touchpoint date")
}

func TestDeletePerson(t *testing.T) {
	srv := setupTestServer(t)
	person := createPersonViaAPI(t, srv, "Frank Lo", "Hooli")

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/people/"+person.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/people/"+person.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListCompanies(t *testing.T) {
	srv := setupTestServer(t)
	createPersonViaAPI(t, srv, "Alice Chen", "Initech")
	createPersonViaAPI(t, srv, "Bob Park", "Initech")

	var summaries []models.CompanySummary
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/companies", nil, &summaries)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, summaries, 1)
	assert.Equal(t, "Initech", summaries[0].Name)
	assert.Equal(t, 2, summaries[0].ContactCount)
}

func TestDashboardTaskActions(t *testing.T) {
	srv := setupTestServer(t)
	person := createPersonViaAPI(t, srv, "Grace Kim", "Globex")

	today := dates.Today()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people/"+person.ID.String()+"/touchpoints", map[string]any{
		"channel":        "email",
		"outcome":        models.OutcomeSent,
		"next_step_date": today,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var board db.TodayBoard
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/dashboard/today", nil, &board)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, board.DueToday, 1)
	task := board.DueToday[0]
	assert.Equal(t, "Grace Kim", task.Person.Name)
	assert.Equal(t, "Globex", task.CompanyName)

	var snoozed map[string]string
	resp = doJSON(t, http.MethodPost, srv.URL+fmt.Sprintf("/api/dashboard/tasks/%s/snooze?days=5", task.ID), nil, &snoozed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	wantDue := time.Now().In(dates.Location()).AddDate(0, 0, 5).Format("2006-01-02")
	assert.Equal(t, wantDue, snoozed["due_date"])

	resp = doJSON(t, http.MethodPost, srv.URL+fmt.Sprintf("/api/dashboard/tasks/%s/done", task.ID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doJSON(t, http.MethodGet, srv.URL+"/api/dashboard/today", nil, &board)
	assert.Empty(t, board.DueToday)
	assert.Empty(t, board.Upcoming)
}

func TestTaskActionStatusCodes(t *testing.T) {
	database, err := db.OpenDatabase(":memory:")
	require.NoError(t, err)
	srv := httptest.NewServer(NewServer(database, nil).Handler())
	t.Cleanup(srv.Close)

	unknown := ulid.Make().String()
	var errBody map[string]string
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/dashboard/tasks/"+unknown+"/done", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, errBody["error"], "not found")

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/dashboard/tasks/"+unknown+"/snooze", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/dashboard/tasks/"+unknown+"/close", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A storage failure is a server error, not a missing task.
	require.NoError(t, database.Close())
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/dashboard/tasks/"+unknown+"/done", nil, &errBody)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSnoozeRejectsBadDays(t *testing.T) {
	srv := setupTestServer(t)

	var errBody map[string]string
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/dashboard/tasks/01HZXW3E8G0000000000000000/snooze?days=0", nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errBody["error"], "days")
}

func TestWaitlistFlow(t *testing.T) {
	srv := setupTestServer(t)

	var item models.WaitlistItem
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/waitlist", map[string]any{
		"company":  "Pied Piper",
		"priority": models.PriorityA,
		"reason":   "dream team",
	}, &item)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, models.WaitlistActive, item.Status)

	var items []models.WaitlistItem
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/waitlist", nil, &items)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, items, 1)

	var converted models.WaitlistItem
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/waitlist/"+item.ID.String()+"/convert", nil, &converted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.WaitlistConverted, converted.Status)

	doJSON(t, http.MethodGet, srv.URL+"/api/waitlist", nil, &items)
	assert.Empty(t, items)
}

func TestWeeklyAnalyticsEndpoint(t *testing.T) {
	srv := setupTestServer(t)
	person := createPersonViaAPI(t, srv, "Hana Sato", "Initech")

	// Monday of a known week; touchpoints land inside it.
	doJSON(t, http.MethodPost, srv.URL+"/api/people/"+person.ID.String()+"/touchpoints", map[string]any{
		"channel": "email",
		"outcome": models.OutcomeSent,
		"date":    "2024-03-12T10:00:00Z",
	}, nil)
	doJSON(t, http.MethodPost, srv.URL+"/api/people/"+person.ID.String()+"/touchpoints", map[string]any{
		"channel": "email",
		"outcome": models.OutcomeReplied,
		"date":    "2024-03-13T10:00:00Z",
	}, nil)

	var report analytics.WeeklyReport
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/analytics/weekly?week_start=2024-03-11", nil, &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "2024-03-11", report.WeekStart)
	require.Len(t, report.Days, 7)
	var sent, replies int
	for _, day := range report.Days {
		sent += day.SentOutbound
		replies += day.RepliesInbound
	}
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, replies)

	var errBody map[string]string
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/analytics/weekly?week_start=bogus", nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRadarUnconfigured(t *testing.T) {
	srv := setupTestServer(t)

	var errBody map[string]string
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/radar", nil, &errBody)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, errBody["error"], "radar")
}
