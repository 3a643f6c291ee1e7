// ABOUTME: Tests for people list filtering, sorting, pagination, and row derivation
package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/harperreed/outreach/models"
)

func makePerson(name, companyName, status string, created time.Time) models.Person {
	return models.Person{
		Name:      name,
		Status:    status,
		CreatedAt: created,
		Company:   &models.Company{Name: companyName},
	}
}

func samplePeople() []models.Person {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Person{
		makePerson("Alice Chen", "Initech", models.StatusOpen, base),
		makePerson("bob park", "Globex", models.StatusWaiting, base.Add(24*time.Hour)),
		makePerson("Carol Diaz", "Initech", models.StatusClosed, base.Add(48*time.Hour)),
	}
}

func TestFilterIdentity(t *testing.T) {
	people := samplePeople()
	got := Filter(people, "", StatusAll)
	if len(got) != len(people) {
		t.Fatalf("expected %d people, got %d", len(people), len(got))
	}
	for i := range people {
		if got[i].Name != people[i].Name {
			t.Errorf("order changed at %d: got %q, want %q", i, got[i].Name, people[i].Name)
		}
	}
}

func TestFilterByNameOrCompany(t *testing.T) {
	people := samplePeople()

	tests := []struct {
		query string
		want  []string
	}{
		{"alice", []string{"Alice Chen"}},
		{"initech", []string{"Alice Chen", "Carol Diaz"}},
		{"GLOBEX", []string{"bob park"}},
		{"nobody", nil},
	}
	for _, tt := range tests {
		got := Filter(people, tt.query, StatusAll)
		if len(got) != len(tt.want) {
			t.Errorf("Filter(%q): got %d matches, want %d", tt.query, len(got), len(tt.want))
			continue
		}
		for i, name := range tt.want {
			if got[i].Name != name {
				t.Errorf("Filter(%q)[%d] = %q, want %q", tt.query, i, got[i].Name, name)
			}
		}
	}
}

func TestFilterByStatus(t *testing.T) {
	people := samplePeople()

	got := Filter(people, "", models.StatusWaiting)
	if len(got) != 1 || got[0].Name != "bob park" {
		t.Fatalf("status filter failed: %+v", got)
	}

	if n := len(Filter(people, "", StatusAll)); n != 3 {
		t.Errorf("status 'all' should match everyone, got %d", n)
	}
}

func TestSortNameAscCaseInsensitive(t *testing.T) {
	base := time.Now()
	people := []models.Person{
		makePerson("bob", "X", models.StatusOpen, base),
		makePerson("Alice", "X", models.StatusOpen, base),
	}
	Sort(people, SortNameAsc)
	if people[0].Name != "Alice" || people[1].Name != "bob" {
		t.Errorf("got order [%s, %s], want [Alice, bob]", people[0].Name, people[1].Name)
	}
}

func TestSortByCreated(t *testing.T) {
	people := samplePeople()

	Sort(people, SortCreatedAsc)
	if people[0].Name != "Alice Chen" {
		t.Errorf("created_asc: first is %q, want Alice Chen", people[0].Name)
	}

	Sort(people, SortCreatedDesc)
	if people[0].Name != "Carol Diaz" {
		t.Errorf("created_desc: first is %q, want Carol Diaz", people[0].Name)
	}

	// unknown key falls back to created_desc
	Sort(people, "bogus")
	if people[0].Name != "Carol Diaz" {
		t.Errorf("fallback sort: first is %q, want Carol Diaz", people[0].Name)
	}
}

func TestPaginationInvariant(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var people []models.Person
	for i := 0; i < 23; i++ {
		people = append(people, makePerson(fmt.Sprintf("Person %02d", i), "Acme", models.StatusOpen, base.Add(time.Duration(i)*time.Hour)))
	}

	perPage := 10
	first := Apply(people, Params{Sort: SortNameAsc, Page: 1, PerPage: perPage})
	if first.PageCount != 3 {
		t.Fatalf("PageCount = %d, want 3", first.PageCount)
	}
	if first.Total != 23 {
		t.Fatalf("Total = %d, want 23", first.Total)
	}

	var seen []string
	for page := 1; page <= first.PageCount; page++ {
		result := Apply(people, Params{Sort: SortNameAsc, Page: page, PerPage: perPage})
		for _, p := range result.Items {
			seen = append(seen, p.Name)
		}
	}
	if len(seen) != 23 {
		t.Fatalf("concatenated pages hold %d items, want 23", len(seen))
	}
	for i := 1; i < len(seen); i++ {
		if seen[i-1] >= seen[i] {
			t.Errorf("pages out of order at %d: %q >= %q", i, seen[i-1], seen[i])
		}
	}
}

func TestPageClamping(t *testing.T) {
	people := samplePeople()

	result := Apply(people, Params{Page: 99, PerPage: 2})
	if result.Page != 2 {
		t.Errorf("over-range page clamped to %d, want 2", result.Page)
	}
	if len(result.Items) != 1 {
		t.Errorf("final page holds %d items, want 1", len(result.Items))
	}

	result = Apply(people, Params{Page: -5, PerPage: 2})
	if result.Page != 1 {
		t.Errorf("under-range page clamped to %d, want 1", result.Page)
	}

	result = Apply(nil, Params{Page: 3})
	if result.Page != 1 || result.PageCount != 1 {
		t.Errorf("empty list: page=%d pageCount=%d, want 1/1", result.Page, result.PageCount)
	}
}

func TestLastTouch(t *testing.T) {
	p := models.Person{}
	if LastTouch(p) != nil {
		t.Error("expected nil last touch for empty history")
	}

	p.Touchpoints = []models.Touchpoint{
		{Channel: "email"},
		{Channel: "linkedin"},
	}
	got := LastTouch(p)
	if got == nil || got.Channel != "linkedin" {
		t.Errorf("LastTouch = %+v, want the final element", got)
	}
}

func TestNextFollowUp(t *testing.T) {
	p := models.Person{
		FollowUps: []models.FollowUp{
			{Status: models.FollowUpClosed, DueDate: "2024-01-01"},
			{Status: models.FollowUpOpen, DueDate: "2024-03-01"},
			{Status: models.FollowUpOpen, DueDate: "2024-02-01"},
		},
	}
	got := NextFollowUp(p)
	if got == nil || got.DueDate != "2024-02-01" {
		t.Errorf("NextFollowUp = %+v, want the open follow-up due 2024-02-01", got)
	}

	if NextFollowUp(models.Person{}) != nil {
		t.Error("expected nil next follow-up when none are open")
	}
}
