// ABOUTME: Waitlist-to-person conversion flow
// ABOUTME: Pre-fills the person form and marks the item converted after creation succeeds
package forms

import (
	"context"
	"fmt"

	"github.com/harperreed/outreach/client"
	"github.com/harperreed/outreach/models"
)

// PrefillFromWaitlist opens the person form seeded from a parked lead.
// Channels and links carry over so nothing has to be retyped.
func PrefillFromWaitlist(item models.WaitlistItem) *PersonForm {
	form := NewPersonForm()
	form.Name = item.Name
	form.CompanyName = item.Company
	form.WhyReachedOut = item.Reason
	form.OutreachChannels = item.OutreachChannels
	for _, link := range models.DecodeLinks(item.Links) {
		form.Links.Add(link)
	}
	return form
}

// ConvertError reports a conversion that created the person but failed
// to mark the waitlist item converted, leaving it on the list.
type ConvertError struct {
	Person *models.Person
	Err    error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("person %s created but waitlist conversion failed: %v", e.Person.ID, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// Convert submits the (possibly user-edited) person form and, only once
// the person exists, marks the originating waitlist item converted.
func Convert(ctx context.Context, store *client.Store, item models.WaitlistItem, form *PersonForm) (*models.Person, error) {
	person, err := form.Submit(ctx, store)
	if person == nil {
		return nil, err
	}
	// A partial create still made the person; conversion proceeds.
	if _, convertErr := store.ConvertWaitlistItem(ctx, item.ID); convertErr != nil {
		return person, &ConvertError{Person: person, Err: convertErr}
	}
	return person, err
}
