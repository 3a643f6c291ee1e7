// ABOUTME: Waitlist MCP tool handlers
// ABOUTME: Implements add_waitlist_item, list_waitlist, and convert_waitlist_item tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

type WaitlistHandlers struct {
	db *sql.DB
}

func NewWaitlistHandlers(database *sql.DB) *WaitlistHandlers {
	return &WaitlistHandlers{db: database}
}

type AddWaitlistItemInput struct {
	Company           string `json:"company" jsonschema:"Company name (required)"`
	Name              string `json:"name,omitempty" jsonschema:"Target person name, if known"`
	Priority          string `json:"priority,omitempty" jsonschema:"Priority: A, B, or C (default B)"`
	Reason            string `json:"reason,omitempty" jsonschema:"Why this lead is parked"`
	PlannedActionDate string `json:"planned_action_date,omitempty" jsonschema:"When to act on it (YYYY-MM-DD)"`
}

type WaitlistItemOutput struct {
	ID                string `json:"id"`
	Company           string `json:"company"`
	Name              string `json:"name,omitempty"`
	Priority          string `json:"priority"`
	Reason            string `json:"reason,omitempty"`
	PlannedActionDate string `json:"planned_action_date,omitempty"`
	Status            string `json:"status"`
	CreatedAt         string `json:"created_at"`
}

func waitlistItemToOutput(item *models.WaitlistItem) WaitlistItemOutput {
	return WaitlistItemOutput{
		ID:                item.ID.String(),
		Company:           item.Company,
		Name:              item.Name,
		Priority:          item.Priority,
		Reason:            item.Reason,
		PlannedActionDate: item.PlannedActionDate,
		Status:            item.Status,
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
	}
}

func (h *WaitlistHandlers) AddWaitlistItem(_ context.Context, request *mcp.CallToolRequest, input AddWaitlistItemInput) (*mcp.CallToolResult, WaitlistItemOutput, error) {
	if input.Company == "" {
		return nil, WaitlistItemOutput{}, fmt.Errorf("company is required")
	}

	item := &models.WaitlistItem{
		Company:           input.Company,
		Name:              input.Name,
		Priority:          input.Priority,
		Reason:            input.Reason,
		PlannedActionDate: input.PlannedActionDate,
	}
	if err := db.CreateWaitlistItem(h.db, item); err != nil {
		return nil, WaitlistItemOutput{}, fmt.Errorf("failed to create waitlist item: %w", err)
	}
	return nil, waitlistItemToOutput(item), nil
}

type ListWaitlistInput struct{}

type ListWaitlistOutput struct {
	Items []WaitlistItemOutput `json:"items"`
}

func (h *WaitlistHandlers) ListWaitlist(_ context.Context, request *mcp.CallToolRequest, input ListWaitlistInput) (*mcp.CallToolResult, ListWaitlistOutput, error) {
	items, err := db.ListWaitlist(h.db)
	if err != nil {
		return nil, ListWaitlistOutput{}, fmt.Errorf("failed to list waitlist: %w", err)
	}
	result := make([]WaitlistItemOutput, len(items))
	for i, item := range items {
		result[i] = waitlistItemToOutput(&item)
	}
	return nil, ListWaitlistOutput{Items: result}, nil
}

type ConvertWaitlistItemInput struct {
	ItemID     string `json:"item_id" jsonschema:"Waitlist item ID (required)"`
	PersonName string `json:"person_name,omitempty" jsonschema:"Person name override (defaults to the item's name)"`
	Title      string `json:"title,omitempty" jsonschema:"Job title for the new person"`
}

func (h *WaitlistHandlers) ConvertWaitlistItem(_ context.Context, request *mcp.CallToolRequest, input ConvertWaitlistItemInput) (*mcp.CallToolResult, PersonOutput, error) {
	id, err := uuid.Parse(input.ItemID)
	if err != nil {
		return nil, PersonOutput{}, fmt.Errorf("invalid item_id: %w", err)
	}

	item, err := db.GetWaitlistItem(h.db, id)
	if err != nil {
		return nil, PersonOutput{}, fmt.Errorf("failed to load waitlist item: %w", err)
	}
	if item == nil {
		return nil, PersonOutput{}, fmt.Errorf("waitlist item not found: %s", input.ItemID)
	}

	name := input.PersonName
	if name == "" {
		name = item.Name
	}
	if name == "" {
		return nil, PersonOutput{}, fmt.Errorf("person_name is required when the item has no name")
	}

	company, err := db.FindOrCreateCompany(h.db, item.Company)
	if err != nil {
		return nil, PersonOutput{}, fmt.Errorf("failed to resolve company: %w", err)
	}

	person := &models.Person{
		CompanyID:        company.ID,
		Name:             name,
		Title:            input.Title,
		WhyReachedOut:    item.Reason,
		OutreachChannels: item.OutreachChannels,
		Links:            item.Links,
	}
	if err := db.CreatePerson(h.db, person); err != nil {
		return nil, PersonOutput{}, fmt.Errorf("failed to create person: %w", err)
	}

	if err := db.ConvertWaitlistItem(h.db, id); err != nil {
		return nil, PersonOutput{}, fmt.Errorf("person created but conversion failed: %w", err)
	}

	created, err := db.GetPerson(h.db, person.ID)
	if err != nil {
		return nil, PersonOutput{}, fmt.Errorf("failed to load created person: %w", err)
	}
	return nil, personToOutput(created), nil
}
