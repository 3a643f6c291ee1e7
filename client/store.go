// ABOUTME: Resource store layered over the API client
// ABOUTME: Mutations report the resources they touched; subscribers are notified per resource
package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/outreach/models"
)

// Resource is a logical collection or entity a view can depend on.
type Resource string

const (
	ResourceDashboard Resource = "dashboard"
	ResourcePeople    Resource = "people"
	ResourceCompanies Resource = "companies"
	ResourceWaitlist  Resource = "waitlist"
)

// PersonResource identifies a single person's detail view.
func PersonResource(id uuid.UUID) Resource {
	return Resource("person:" + id.String())
}

// personMutation is the conservative invalidation set for anything that
// changes a person: their detail, both collections they appear in, and
// the dashboard whose tasks embed them.
func personMutation(id uuid.UUID) []Resource {
	return []Resource{ResourceDashboard, ResourcePeople, ResourceCompanies, PersonResource(id)}
}

// Store wraps the API client and tracks which views care about which
// resources. Every mutation notifies the subscribers of the resources it
// affected, so views refetch exactly when their data went stale.
type Store struct {
	client *Client

	mu          sync.Mutex
	subscribers map[Resource][]func()
}

func NewStore(c *Client) *Store {
	return &Store{
		client:      c,
		subscribers: make(map[Resource][]func()),
	}
}

func (s *Store) Client() *Client {
	return s.client
}

// Subscribe registers a callback for a resource and returns a cancel
// function. The callback runs on the mutating goroutine; subscribers
// that need to refetch should schedule that work themselves.
func (s *Store) Subscribe(resource Resource, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers[resource] = append(s.subscribers[resource], fn)
	slot := len(s.subscribers[resource]) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subscribers[resource]
		if slot < len(subs) {
			subs[slot] = nil
		}
	}
}

// Invalidate notifies every live subscriber of the given resources.
func (s *Store) Invalidate(resources ...Resource) {
	s.mu.Lock()
	var pending []func()
	for _, resource := range resources {
		for _, fn := range s.subscribers[resource] {
			if fn != nil {
				pending = append(pending, fn)
			}
		}
	}
	s.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func (s *Store) CreatePerson(ctx context.Context, params CreatePersonParams) (*models.Person, error) {
	person, err := s.client.CreatePerson(ctx, params)
	if err != nil {
		return nil, err
	}
	s.Invalidate(personMutation(person.ID)...)
	return person, nil
}

func (s *Store) UpdatePerson(ctx context.Context, id uuid.UUID, params UpdatePersonParams) (*models.Person, error) {
	person, err := s.client.UpdatePerson(ctx, id, params)
	if err != nil {
		return nil, err
	}
	s.Invalidate(personMutation(id)...)
	return person, nil
}

func (s *Store) DeletePerson(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeletePerson(ctx, id); err != nil {
		return err
	}
	s.Invalidate(personMutation(id)...)
	return nil
}

func (s *Store) AddTouchpoint(ctx context.Context, personID uuid.UUID, params TouchpointParams) (*models.Touchpoint, error) {
	tp, err := s.client.AddTouchpoint(ctx, personID, params)
	if err != nil {
		return nil, err
	}
	s.Invalidate(personMutation(personID)...)
	return tp, nil
}

func (s *Store) AddWaitlistItem(ctx context.Context, params WaitlistParams) (*models.WaitlistItem, error) {
	item, err := s.client.AddWaitlistItem(ctx, params)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ResourceWaitlist)
	return item, nil
}

func (s *Store) ConvertWaitlistItem(ctx context.Context, id uuid.UUID) (*models.WaitlistItem, error) {
	item, err := s.client.ConvertWaitlistItem(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ResourceWaitlist)
	return item, nil
}

func (s *Store) TaskDone(ctx context.Context, id ulid.ULID) error {
	if err := s.client.TaskDone(ctx, id); err != nil {
		return err
	}
	s.Invalidate(ResourceDashboard, ResourcePeople)
	return nil
}

func (s *Store) TaskSnooze(ctx context.Context, id ulid.ULID, days int) error {
	if err := s.client.TaskSnooze(ctx, id, days); err != nil {
		return err
	}
	s.Invalidate(ResourceDashboard, ResourcePeople)
	return nil
}

func (s *Store) TaskClose(ctx context.Context, id ulid.ULID) error {
	if err := s.client.TaskClose(ctx, id); err != nil {
		return err
	}
	s.Invalidate(ResourceDashboard, ResourcePeople)
	return nil
}
