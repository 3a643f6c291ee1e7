package cli

import (
	"database/sql"
	"os"
	"testing"

	"github.com/harperreed/outreach/db"
)

func setupTestCLI(t *testing.T) *sql.DB {
	tmpDB, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	_ = tmpDB.Close()
	t.Cleanup(func() { _ = os.Remove(tmpDB.Name()) })

	database, err := db.OpenDatabase(tmpDB.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func TestAddPersonCommand(t *testing.T) {
	database := setupTestCLI(t)

	err := AddPersonCommand(database, []string{"--name", "Alice Chen", "--company", "Initech"})
	if err != nil {
		t.Fatalf("AddPersonCommand failed: %v", err)
	}

	people, err := db.ListPeople(database)
	if err != nil {
		t.Fatal(err)
	}
	if len(people) != 1 {
		t.Fatalf("expected 1 person, got %d", len(people))
	}
	if people[0].Name != "Alice Chen" {
		t.Errorf("name = %q, want Alice Chen", people[0].Name)
	}
	if len(people[0].FollowUps) != 1 {
		t.Errorf("expected the default initial follow-up, got %d", len(people[0].FollowUps))
	}
}

func TestAddPersonCommandRequiresFlags(t *testing.T) {
	database := setupTestCLI(t)

	if err := AddPersonCommand(database, []string{"--name", "Alice"}); err == nil {
		t.Error("expected error for missing --company")
	}
	if err := AddPersonCommand(database, []string{"--company", "Initech"}); err == nil {
		t.Error("expected error for missing --name")
	}
}

func TestListPeopleCommand(t *testing.T) {
	database := setupTestCLI(t)

	if err := AddPersonCommand(database, []string{"--name", "Alice Chen", "--company", "Initech"}); err != nil {
		t.Fatal(err)
	}

	if err := ListPeopleCommand(database, []string{"--query", "alice"}); err != nil {
		t.Errorf("ListPeopleCommand failed: %v", err)
	}
}

func TestLogTouchpointCommand(t *testing.T) {
	database := setupTestCLI(t)

	if err := AddPersonCommand(database, []string{"--name", "Bob Park", "--company", "Globex", "--follow-up-in", "0"}); err != nil {
		t.Fatal(err)
	}
	people, err := db.ListPeople(database)
	if err != nil {
		t.Fatal(err)
	}
	personID := people[0].ID.String()

	err = LogTouchpointCommand(database, []string{
		"--person", personID,
		"--channel", "email",
		"--outcome", "sent",
		"--next", "2099-06-01",
	})
	if err != nil {
		t.Fatalf("LogTouchpointCommand failed: %v", err)
	}

	person, err := db.GetPerson(database, people[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(person.Touchpoints) != 1 {
		t.Fatalf("expected 1 touchpoint, got %d", len(person.Touchpoints))
	}
	if person.Touchpoints[0].Direction != "outbound" {
		t.Errorf("direction = %q, want outbound", person.Touchpoints[0].Direction)
	}
	if len(person.FollowUps) != 1 || person.FollowUps[0].DueDate != "2099-06-01" {
		t.Errorf("expected follow-up due 2099-06-01, got %+v", person.FollowUps)
	}
}

func TestTodayCommand(t *testing.T) {
	database := setupTestCLI(t)

	// Runs clean on an empty board
	if err := TodayCommand(database, []string{}); err != nil {
		t.Errorf("TodayCommand failed: %v", err)
	}
}

func TestWaitlistCommands(t *testing.T) {
	database := setupTestCLI(t)

	err := AddWaitlistCommand(database, []string{"--company", "Pied Piper", "--name", "Jane", "--priority", "A"})
	if err != nil {
		t.Fatalf("AddWaitlistCommand failed: %v", err)
	}

	items, err := db.ListWaitlist(database)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 waitlist item, got %d", len(items))
	}

	err = ConvertWaitlistCommand(database, []string{items[0].ID.String()})
	if err != nil {
		t.Fatalf("ConvertWaitlistCommand failed: %v", err)
	}

	people, err := db.ListPeople(database)
	if err != nil {
		t.Fatal(err)
	}
	if len(people) != 1 || people[0].Name != "Jane" {
		t.Errorf("expected converted person Jane, got %+v", people)
	}

	items, err = db.ListWaitlist(database)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Error("converted item still active on the waitlist")
	}
}

func TestWeeklyCommand(t *testing.T) {
	database := setupTestCLI(t)

	if err := WeeklyCommand(database, []string{"--week", "2024-03-11"}); err != nil {
		t.Errorf("WeeklyCommand failed: %v", err)
	}
	if err := WeeklyCommand(database, []string{"--week", "bogus"}); err == nil {
		t.Error("expected error for invalid --week date")
	}
}

func TestReconcileCommand(t *testing.T) {
	database := setupTestCLI(t)

	if err := ReconcileCommand(database, []string{}); err != nil {
		t.Errorf("ReconcileCommand failed: %v", err)
	}
}
