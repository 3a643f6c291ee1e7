// ABOUTME: Form assemblers shaping user input into API payloads
// ABOUTME: URL normalization, link accumulation, and the two-step person create
package forms

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/harperreed/outreach/client"
	"github.com/harperreed/outreach/models"
)

var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// NormalizeURL prefixes bare host/path input with https://. Anything
// that already carries a scheme passes through; empty input stays empty.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if schemeRe.MatchString(trimmed) {
		return trimmed
	}
	return "https://" + trimmed
}

// LinkList accumulates normalized links in entry order. Entries are
// removable by position, matching a list the user edits row by row.
type LinkList struct {
	links []string
}

// Add normalizes and appends a link. Empty input is a no-op.
func (l *LinkList) Add(raw string) bool {
	normalized := NormalizeURL(raw)
	if normalized == "" {
		return false
	}
	l.links = append(l.links, normalized)
	return true
}

func (l *LinkList) Remove(index int) {
	if index < 0 || index >= len(l.links) {
		return
	}
	l.links = append(l.links[:index], l.links[index+1:]...)
}

func (l *LinkList) Links() []string {
	return l.links
}

// Encode folds any pending (typed but not yet added) input into the
// list and serializes for transport.
func (l *LinkList) Encode(pending string) string {
	links := l.links
	if normalized := NormalizeURL(pending); normalized != "" {
		links = append(append([]string(nil), links...), normalized)
	}
	return models.EncodeLinks(links)
}

// PersonForm collects the add-person modal's fields, including the
// optional initial touchpoint logged alongside creation.
type PersonForm struct {
	Name             string
	CompanyName      string
	Title            string
	LinkedInURL      string
	Relationship     string
	WhyReachedOut    string
	OutreachChannels string

	Links       LinkList
	PendingLink string

	CreateInitialFollowup bool
	InitialFollowupDays   int

	LogNow         bool
	TouchChannel   string
	TouchOutcome   string
	TouchDirection string
	TouchPreview   string
}

func NewPersonForm() *PersonForm {
	return &PersonForm{
		Relationship:          models.RelationshipCold,
		CreateInitialFollowup: true,
		InitialFollowupDays:   2,
		TouchOutcome:          models.OutcomeSent,
		TouchDirection:        models.DirectionOutbound,
	}
}

// Payload shapes the form into the person-creation request plus, when
// "log now" is set, the touchpoint request that follows it.
func (f *PersonForm) Payload() (client.CreatePersonParams, *client.TouchpointParams, error) {
	params := client.CreatePersonParams{
		Name:                  strings.TrimSpace(f.Name),
		CompanyName:           strings.TrimSpace(f.CompanyName),
		Title:                 strings.TrimSpace(f.Title),
		LinkedInURL:           NormalizeURL(f.LinkedInURL),
		Relationship:          f.Relationship,
		WhyReachedOut:         strings.TrimSpace(f.WhyReachedOut),
		OutreachChannels:      strings.TrimSpace(f.OutreachChannels),
		Status:                models.StatusOpen,
		Links:                 f.Links.Encode(f.PendingLink),
		CreateInitialFollowup: f.CreateInitialFollowup,
		InitialFollowupDays:   f.InitialFollowupDays,
	}
	if params.Name == "" {
		return client.CreatePersonParams{}, nil, fmt.Errorf("name is required")
	}
	if params.CompanyName == "" {
		return client.CreatePersonParams{}, nil, fmt.Errorf("company is required")
	}

	var touch *client.TouchpointParams
	if f.LogNow {
		if f.TouchChannel == "" {
			return client.CreatePersonParams{}, nil, fmt.Errorf("channel is required to log a touchpoint")
		}
		touch = &client.TouchpointParams{
			Date:           time.Now().UTC().Format(time.RFC3339),
			Channel:        f.TouchChannel,
			Outcome:        f.TouchOutcome,
			Direction:      f.TouchDirection,
			MessagePreview: strings.TrimSpace(f.TouchPreview),
		}
	}
	return params, touch, nil
}

// PartialCreateError reports the non-atomic failure mode of the
// two-step create: the person exists but the follow-on request failed.
type PartialCreateError struct {
	Person *models.Person
	Err    error
}

func (e *PartialCreateError) Error() string {
	return fmt.Sprintf("person %s created but initial touchpoint failed: %v", e.Person.ID, e.Err)
}

func (e *PartialCreateError) Unwrap() error {
	return e.Err
}

// Submit creates the person and then, when requested, logs the initial
// touchpoint as a second request. A touchpoint failure surfaces as a
// PartialCreateError carrying the already-created person.
func (f *PersonForm) Submit(ctx context.Context, store *client.Store) (*models.Person, error) {
	params, touch, err := f.Payload()
	if err != nil {
		return nil, err
	}

	person, err := store.CreatePerson(ctx, params)
	if err != nil {
		return nil, err
	}

	if touch != nil {
		if _, err := store.AddTouchpoint(ctx, person.ID, *touch); err != nil {
			return person, &PartialCreateError{Person: person, Err: err}
		}
	}
	return person, nil
}

// WaitlistForm collects the park-a-company modal's fields.
type WaitlistForm struct {
	Company           string
	Name              string
	Priority          string
	Reason            string
	PlannedActionDate string
	OutreachChannels  string

	Links       LinkList
	PendingLink string
}

func NewWaitlistForm() *WaitlistForm {
	return &WaitlistForm{Priority: models.PriorityB}
}

func (f *WaitlistForm) Payload() (client.WaitlistParams, error) {
	params := client.WaitlistParams{
		Company:           strings.TrimSpace(f.Company),
		Name:              strings.TrimSpace(f.Name),
		Priority:          f.Priority,
		Reason:            strings.TrimSpace(f.Reason),
		PlannedActionDate: strings.TrimSpace(f.PlannedActionDate),
		OutreachChannels:  strings.TrimSpace(f.OutreachChannels),
		Links:             f.Links.Encode(f.PendingLink),
	}
	if params.Company == "" {
		return client.WaitlistParams{}, fmt.Errorf("company is required")
	}
	return params, nil
}

func (f *WaitlistForm) Submit(ctx context.Context, store *client.Store) (*models.WaitlistItem, error) {
	params, err := f.Payload()
	if err != nil {
		return nil, err
	}
	return store.AddWaitlistItem(ctx, params)
}
