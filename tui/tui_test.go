// ABOUTME: Tests for the TUI model
// ABOUTME: Drives Update with messages against a real API server
package tui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/outreach/client"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/web"
)

func setupModel(t *testing.T) (*Model, *client.Store) {
	t.Helper()
	database, err := db.OpenDatabase(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })

	srv := httptest.NewServer(web.NewServer(database, nil).Handler())
	t.Cleanup(srv.Close)

	store := client.NewStore(client.NewClient(srv.URL))
	return NewModel(store), store
}

func keyMsg(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabSwitching(t *testing.T) {
	m, _ := setupModel(t)

	if m.tab != TabToday {
		t.Fatalf("initial tab = %v, want Today", m.tab)
	}

	updated, _ := m.Update(keyMsg("tab"))
	m = updated.(*Model)
	if m.tab != TabPeople {
		t.Errorf("after tab key, tab = %v, want People", m.tab)
	}

	updated, _ = m.Update(keyMsg("4"))
	m = updated.(*Model)
	if m.tab != TabWaitlist {
		t.Errorf("after '4', tab = %v, want Waitlist", m.tab)
	}
}

func TestPeopleViewRendersLoadedData(t *testing.T) {
	m, store := setupModel(t)

	_, err := store.CreatePerson(context.Background(), client.CreatePersonParams{
		Name:        "Alice Chen",
		CompanyName: "Initech",
	})
	if err != nil {
		t.Fatal(err)
	}

	people, err := store.Client().ListPeople(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	m.tab = TabPeople
	updated, _ := m.Update(peopleLoadedMsg{people})
	m = updated.(*Model)

	view := m.View()
	if !strings.Contains(view, "Alice Chen") {
		t.Error("people view missing loaded person")
	}
	if !strings.Contains(view, "Initech") {
		t.Error("people view missing company name")
	}
}

func TestSearchResetsPage(t *testing.T) {
	m, _ := setupModel(t)
	m.tab = TabPeople
	m.page = 5

	updated, _ := m.Update(keyMsg("/"))
	m = updated.(*Model)
	if !m.searching {
		t.Fatal("'/' should enter search mode")
	}

	updated, _ = m.Update(keyMsg("a"))
	m = updated.(*Model)
	if m.searchQuery != "a" {
		t.Errorf("searchQuery = %q, want 'a'", m.searchQuery)
	}
	if m.page != 1 {
		t.Errorf("page = %d, want reset to 1", m.page)
	}
}

func TestSearchBackspaceTrimsWholeRune(t *testing.T) {
	m, _ := setupModel(t)
	m.tab = TabPeople

	updated, _ := m.Update(keyMsg("/"))
	m = updated.(*Model)
	updated, _ = m.Update(keyMsg("r"))
	m = updated.(*Model)
	updated, _ = m.Update(keyMsg("é"))
	m = updated.(*Model)
	if m.searchQuery != "ré" {
		t.Fatalf("searchQuery = %q, want 'ré'", m.searchQuery)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(*Model)
	if m.searchQuery != "r" {
		t.Errorf("searchQuery = %q, want 'r' after backspace", m.searchQuery)
	}
}

func TestWaitlistConvertOpensPrefilledForm(t *testing.T) {
	m, store := setupModel(t)

	item, err := store.AddWaitlistItem(context.Background(), client.WaitlistParams{
		Company: "Acme",
		Name:    "Jane",
	})
	if err != nil {
		t.Fatal(err)
	}

	m.tab = TabWaitlist
	updated, _ := m.Update(waitlistLoadedMsg{[]models.WaitlistItem{*item}})
	m = updated.(*Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	if m.viewMode != ViewAddPerson {
		t.Fatal("enter on a waitlist item should open the person form")
	}
	if m.form.form.Name != "Jane" || m.form.form.CompanyName != "Acme" {
		t.Errorf("form not prefilled: name=%q company=%q", m.form.form.Name, m.form.form.CompanyName)
	}

	view := m.View()
	if !strings.Contains(view, "CONVERT Acme") {
		t.Error("form title should show the conversion target")
	}
}

func TestConfirmGuardsDeletion(t *testing.T) {
	m, store := setupModel(t)

	person, err := store.CreatePerson(context.Background(), client.CreatePersonParams{
		Name:        "Bob Park",
		CompanyName: "Globex",
	})
	if err != nil {
		t.Fatal(err)
	}

	people, err := store.Client().ListPeople(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	m.tab = TabPeople
	updated, _ := m.Update(peopleLoadedMsg{people})
	m = updated.(*Model)

	updated, _ = m.Update(keyMsg("x"))
	m = updated.(*Model)
	if m.viewMode != ViewConfirm {
		t.Fatal("'x' should open the confirm view")
	}

	// Declining leaves the person alone
	updated, _ = m.Update(keyMsg("n"))
	m = updated.(*Model)
	if m.viewMode != ViewBrowse {
		t.Fatal("'n' should return to browse")
	}
	if still, _ := store.Client().GetPerson(context.Background(), person.ID); still == nil {
		t.Error("declined deletion must not delete")
	}

	// Accepting runs the deletion command
	updated, _ = m.Update(keyMsg("x"))
	m = updated.(*Model)
	updated, cmd := m.Update(keyMsg("y"))
	m = updated.(*Model)
	if cmd == nil {
		t.Fatal("'y' should return the deletion command")
	}
	if msg := cmd(); msg != (actionDoneMsg{}) {
		t.Fatalf("deletion command failed: %+v", msg)
	}
	if gone, _ := store.Client().GetPerson(context.Background(), person.ID); gone != nil {
		t.Error("accepted deletion should delete the person")
	}
}

func TestInvalidationTriggersRefetch(t *testing.T) {
	m, store := setupModel(t)

	if _, err := store.CreatePerson(context.Background(), client.CreatePersonParams{
		Name:        "Grace Kim",
		CompanyName: "Globex",
	}); err != nil {
		t.Fatal(err)
	}

	// The store pushed invalidations into the model's channel; draining
	// one must yield a refetch command for that resource.
	select {
	case resource := <-m.invalidations:
		if cmd := m.refetch(resource); cmd == nil {
			t.Errorf("no refetch command for invalidated resource %q", resource)
		}
	default:
		t.Fatal("mutation did not queue an invalidation")
	}
}
