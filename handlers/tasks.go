// ABOUTME: Dashboard task MCP tool handlers
// ABOUTME: Implements list_today, complete_task, snooze_task, and close_task tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
)

type TaskHandlers struct {
	db *sql.DB
}

func NewTaskHandlers(database *sql.DB) *TaskHandlers {
	return &TaskHandlers{db: database}
}

func parsePersonID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid person_id: %w", err)
	}
	return id, nil
}

func parseTaskID(raw string) (ulid.ULID, error) {
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("invalid task_id: %w", err)
	}
	return id, nil
}

type ListTodayInput struct{}

type TaskOutput struct {
	ID          string `json:"id"`
	PersonID    string `json:"person_id"`
	PersonName  string `json:"person_name"`
	CompanyName string `json:"company_name"`
	DueDate     string `json:"due_date"`
	Action      string `json:"action"`
}

type ListTodayOutput struct {
	Overdue  []TaskOutput `json:"overdue"`
	DueToday []TaskOutput `json:"due_today"`
	Upcoming []TaskOutput `json:"upcoming"`
}

func taskToOutput(task db.Task) TaskOutput {
	return TaskOutput{
		ID:          task.ID.String(),
		PersonID:    task.PersonID.String(),
		PersonName:  task.Person.Name,
		CompanyName: task.CompanyName,
		DueDate:     task.DueDate,
		Action:      task.Action,
	}
}

func tasksToOutput(tasks []db.Task) []TaskOutput {
	out := make([]TaskOutput, len(tasks))
	for i, task := range tasks {
		out[i] = taskToOutput(task)
	}
	return out
}

func (h *TaskHandlers) ListToday(_ context.Context, request *mcp.CallToolRequest, input ListTodayInput) (*mcp.CallToolResult, ListTodayOutput, error) {
	board, err := db.DashboardToday(h.db, dates.Today())
	if err != nil {
		return nil, ListTodayOutput{}, fmt.Errorf("failed to build today board: %w", err)
	}
	return nil, ListTodayOutput{
		Overdue:  tasksToOutput(board.Overdue),
		DueToday: tasksToOutput(board.DueToday),
		Upcoming: tasksToOutput(board.Upcoming),
	}, nil
}

type TaskActionInput struct {
	TaskID string `json:"task_id" jsonschema:"Follow-up task ID (required)"`
}

type TaskStatusOutput struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	DueDate string `json:"due_date,omitempty"`
}

func (h *TaskHandlers) CompleteTask(_ context.Context, request *mcp.CallToolRequest, input TaskActionInput) (*mcp.CallToolResult, TaskStatusOutput, error) {
	id, err := parseTaskID(input.TaskID)
	if err != nil {
		return nil, TaskStatusOutput{}, err
	}
	if err := db.MarkFollowUpDone(h.db, id); err != nil {
		return nil, TaskStatusOutput{}, fmt.Errorf("failed to complete task: %w", err)
	}
	return nil, TaskStatusOutput{TaskID: input.TaskID, Status: "done"}, nil
}

type SnoozeTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"Follow-up task ID (required)"`
	Days   int    `json:"days,omitempty" jsonschema:"Days to push the due date out (default 2)"`
}

func (h *TaskHandlers) SnoozeTask(_ context.Context, request *mcp.CallToolRequest, input SnoozeTaskInput) (*mcp.CallToolResult, TaskStatusOutput, error) {
	id, err := parseTaskID(input.TaskID)
	if err != nil {
		return nil, TaskStatusOutput{}, err
	}
	days := input.Days
	if days <= 0 {
		days = 2
	}
	newDate, err := db.SnoozeFollowUp(h.db, id, days)
	if err != nil {
		return nil, TaskStatusOutput{}, fmt.Errorf("failed to snooze task: %w", err)
	}
	return nil, TaskStatusOutput{TaskID: input.TaskID, Status: "snoozed", DueDate: newDate}, nil
}

func (h *TaskHandlers) CloseTask(_ context.Context, request *mcp.CallToolRequest, input TaskActionInput) (*mcp.CallToolResult, TaskStatusOutput, error) {
	id, err := parseTaskID(input.TaskID)
	if err != nil {
		return nil, TaskStatusOutput{}, err
	}
	if err := db.CloseFollowUp(h.db, id); err != nil {
		return nil, TaskStatusOutput{}, fmt.Errorf("failed to close task: %w", err)
	}
	return nil, TaskStatusOutput{TaskID: input.TaskID, Status: "closed"}, nil
}
