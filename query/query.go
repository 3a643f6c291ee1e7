// ABOUTME: List derivation for the people views
// ABOUTME: Filter, sort, and paginate a fetched collection plus per-row derived fields
package query

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/models"
)

const DefaultPerPage = 10

// Sort keys accepted by Apply.
const (
	SortCreatedDesc = "created_desc"
	SortCreatedAsc  = "created_asc"
	SortNameAsc     = "name_asc"
)

// StatusAll is the sentinel that disables status filtering.
const StatusAll = "all"

type Params struct {
	Query   string
	Status  string // all|open|waiting|closed
	Sort    string // created_desc|created_asc|name_asc
	Page    int
	PerPage int
}

type Result struct {
	Items     []models.Person
	Page      int
	PageCount int
	Total     int
}

// Apply filters, sorts, and paginates people. The requested page is
// clamped into the valid range rather than erroring, so stale page state
// after a filter change still resolves to something sensible.
func Apply(people []models.Person, params Params) Result {
	filtered := Filter(people, params.Query, params.Status)
	Sort(filtered, params.Sort)

	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total := len(filtered)
	pageCount := int(math.Ceil(float64(total) / float64(perPage)))
	if pageCount < 1 {
		pageCount = 1
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Items:     filtered[start:end],
		Page:      page,
		PageCount: pageCount,
		Total:     total,
	}
}

// Filter matches the query case-insensitively against person name or
// company name; either match qualifies. Status is exact unless "all" or
// empty. Always returns a fresh slice, preserving input order.
func Filter(people []models.Person, queryText, status string) []models.Person {
	needle := strings.ToLower(strings.TrimSpace(queryText))
	out := make([]models.Person, 0, len(people))
	for _, p := range people {
		if status != "" && status != StatusAll && p.Status != status {
			continue
		}
		if needle != "" {
			companyName := ""
			if p.Company != nil {
				companyName = p.Company.Name
			}
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(companyName), needle) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Sort orders people in place. Unknown keys fall back to created_desc.
func Sort(people []models.Person, key string) {
	switch key {
	case SortNameAsc:
		sort.SliceStable(people, func(i, j int) bool {
			return strings.ToLower(people[i].Name) < strings.ToLower(people[j].Name)
		})
	case SortCreatedAsc:
		sort.SliceStable(people, func(i, j int) bool {
			return people[i].CreatedAt.Before(people[j].CreatedAt)
		})
	default:
		sort.SliceStable(people, func(i, j int) bool {
			return people[j].CreatedAt.Before(people[i].CreatedAt)
		})
	}
}

// LastTouch is the chronologically last touchpoint. The storage layer
// orders touchpoints by date then ID, so the last element is the latest.
func LastTouch(p models.Person) *models.Touchpoint {
	if len(p.Touchpoints) == 0 {
		return nil
	}
	return &p.Touchpoints[len(p.Touchpoints)-1]
}

// NextFollowUp is the earliest-due open follow-up, or nil if none.
// Due dates that fail to normalize sort after everything parseable.
func NextFollowUp(p models.Person) *models.FollowUp {
	var best *models.FollowUp
	var bestTime time.Time
	var bestOK bool
	for i := range p.FollowUps {
		f := &p.FollowUps[i]
		if f.Status != models.FollowUpOpen {
			continue
		}
		t, ok := dates.Normalize(f.DueDate)
		switch {
		case best == nil, ok && !bestOK:
			best, bestTime, bestOK = f, t, ok
		case ok && t.Before(bestTime):
			best, bestTime = f, t
		}
	}
	return best
}
