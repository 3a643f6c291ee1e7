// ABOUTME: Analytics and radar MCP tool handlers
// ABOUTME: Implements weekly_analytics and search_radar tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/outreach/analytics"
	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/radar"
)

type AnalyticsHandlers struct {
	db *sql.DB
}

func NewAnalyticsHandlers(database *sql.DB) *AnalyticsHandlers {
	return &AnalyticsHandlers{db: database}
}

type WeeklyAnalyticsInput struct {
	WeekStart string `json:"week_start,omitempty" jsonschema:"Any date inside the week to report on (YYYY-MM-DD, default: current week)"`
}

func (h *AnalyticsHandlers) WeeklyAnalytics(_ context.Context, request *mcp.CallToolRequest, input WeeklyAnalyticsInput) (*mcp.CallToolResult, analytics.WeeklyReport, error) {
	anchor := time.Now().In(dates.Location())
	if input.WeekStart != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.WeekStart, dates.Location())
		if err != nil {
			return nil, analytics.WeeklyReport{}, fmt.Errorf("invalid week_start: %w", err)
		}
		anchor = parsed
	}

	report, err := analytics.Weekly(h.db, anchor)
	if err != nil {
		return nil, analytics.WeeklyReport{}, fmt.Errorf("failed to compute weekly analytics: %w", err)
	}
	return nil, *report, nil
}

type RadarHandlers struct {
	service *radar.Service
}

func NewRadarHandlers(service *radar.Service) *RadarHandlers {
	return &RadarHandlers{service: service}
}

type SearchRadarInput struct {
	Query string `json:"query,omitempty" jsonschema:"News search query (default: sponsor hiring news)"`
}

type SearchRadarOutput struct {
	Items []radar.NewsItem `json:"items"`
}

func (h *RadarHandlers) SearchRadar(ctx context.Context, request *mcp.CallToolRequest, input SearchRadarInput) (*mcp.CallToolResult, SearchRadarOutput, error) {
	items, err := h.service.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchRadarOutput{}, fmt.Errorf("failed to search news: %w", err)
	}
	return nil, SearchRadarOutput{Items: items}, nil
}
