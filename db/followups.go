// ABOUTME: Follow-up task database operations
// ABOUTME: Handles task CRUD, snoozing, and the today dashboard buckets
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/outreach/models"
)

func CreateFollowUp(db *sql.DB, f *models.FollowUp) error {
	if f.ID.Compare(ulid.ULID{}) == 0 {
		f.ID = ulid.Make()
	}
	if f.Status == "" {
		f.Status = models.FollowUpOpen
	}
	if f.Action == "" {
		f.Action = "Follow Up"
	}

	_, err := db.Exec(`
		INSERT INTO follow_ups (id, person_id, due_date, action, status)
		VALUES (?, ?, ?, ?, ?)
	`, f.ID.String(), f.PersonID.String(), f.DueDate, f.Action, f.Status)

	return err
}

func scanFollowUp(scanner interface{ Scan(...any) error }) (*models.FollowUp, error) {
	f := &models.FollowUp{}
	var idStr, personIDStr string

	err := scanner.Scan(&idStr, &personIDStr, &f.DueDate, &f.Action, &f.Status)
	if err != nil {
		return nil, err
	}
	if f.ID, err = ulid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("failed to parse follow-up ID: %w", err)
	}
	if f.PersonID, err = uuid.Parse(personIDStr); err != nil {
		return nil, fmt.Errorf("failed to parse person ID: %w", err)
	}
	return f, nil
}

func GetFollowUp(db *sql.DB, id ulid.ULID) (*models.FollowUp, error) {
	row := db.QueryRow(`
		SELECT id, person_id, due_date, action, status FROM follow_ups WHERE id = ?
	`, id.String())

	f, err := scanFollowUp(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListFollowUps returns a person's follow-ups ordered by due date.
func ListFollowUps(db *sql.DB, personID uuid.UUID) ([]models.FollowUp, error) {
	rows, err := db.Query(`
		SELECT id, person_id, due_date, action, status
		FROM follow_ups WHERE person_id = ?
		ORDER BY due_date ASC, id ASC
	`, personID.String())
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	followUps := []models.FollowUp{}
	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		followUps = append(followUps, *f)
	}
	return followUps, rows.Err()
}

func attachFollowUps(db *sql.DB, people []models.Person, index map[uuid.UUID]int) error {
	rows, err := db.Query(`SELECT id, person_id, due_date, action, status FROM follow_ups ORDER BY due_date ASC, id ASC`)
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return err
		}
		if i, ok := index[f.PersonID]; ok {
			people[i].FollowUps = append(people[i].FollowUps, *f)
		}
	}
	return rows.Err()
}

// ErrTaskNotFound reports a mutation against a follow-up that does not exist.
var ErrTaskNotFound = errors.New("follow-up not found")

// MarkFollowUpDone sets a task's status to done.
func MarkFollowUpDone(db *sql.DB, id ulid.ULID) error {
	return setFollowUpStatus(db, id, models.FollowUpDone)
}

// CloseFollowUp sets a task's status to closed. The reason is logged by the
// caller; only the status change is persisted.
func CloseFollowUp(db *sql.DB, id ulid.ULID) error {
	return setFollowUpStatus(db, id, models.FollowUpClosed)
}

func setFollowUpStatus(db *sql.DB, id ulid.ULID, status string) error {
	result, err := db.Exec(`UPDATE follow_ups SET status = ? WHERE id = ?`, status, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SnoozeFollowUp pushes a task's due date forward by the given number of
// days and returns the new date. The status stays open.
func SnoozeFollowUp(db *sql.DB, id ulid.ULID, days int) (string, error) {
	f, err := GetFollowUp(db, id)
	if err != nil {
		return "", err
	}
	if f == nil {
		return "", ErrTaskNotFound
	}

	due, err := time.Parse("2006-01-02", f.DueDate)
	if err != nil {
		return "", fmt.Errorf("follow-up %s has malformed due date %q: %w", id, f.DueDate, err)
	}
	newDate := due.AddDate(0, 0, days).Format("2006-01-02")

	_, err = db.Exec(`UPDATE follow_ups SET due_date = ? WHERE id = ?`, newDate, id.String())
	return newDate, err
}

// Task is a follow-up joined with the person and company it belongs to,
// as served on the today dashboard.
type Task struct {
	models.FollowUp
	Person models.PersonSummary `json:"person"`
	// Flattened for display; the person summary does not carry the company.
	CompanyName string `json:"company_name"`
}

// TodayBoard is the dashboard payload: open tasks bucketed around today.
type TodayBoard struct {
	Overdue  []Task `json:"overdue"`
	DueToday []Task `json:"due_today"`
	Upcoming []Task `json:"upcoming"`
}

const upcomingLimit = 10

// DashboardToday buckets open follow-ups against the given date
// (YYYY-MM-DD, normally today in the display timezone). Overdue and due
// today are complete; upcoming is capped at the next ten tasks.
func DashboardToday(db *sql.DB, today string) (*TodayBoard, error) {
	rows, err := db.Query(`
		SELECT f.id, f.person_id, f.due_date, f.action, f.status,
		       p.name, COALESCE(p.title, ''), c.name
		FROM follow_ups f
		JOIN people p ON p.id = f.person_id
		JOIN companies c ON c.id = p.company_id
		WHERE f.status = ?
		ORDER BY f.due_date ASC, f.id ASC
	`, models.FollowUpOpen)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	board := &TodayBoard{Overdue: []Task{}, DueToday: []Task{}, Upcoming: []Task{}}
	for rows.Next() {
		var task Task
		var idStr, personIDStr string
		err := rows.Scan(&idStr, &personIDStr, &task.DueDate, &task.Action, &task.Status,
			&task.Person.Name, &task.Person.Title, &task.CompanyName)
		if err != nil {
			return nil, err
		}
		if task.ID, err = ulid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("failed to parse follow-up ID: %w", err)
		}
		if task.PersonID, err = uuid.Parse(personIDStr); err != nil {
			return nil, fmt.Errorf("failed to parse person ID: %w", err)
		}
		task.Person.ID = task.PersonID

		switch {
		case task.DueDate < today:
			board.Overdue = append(board.Overdue, task)
		case task.DueDate == today:
			board.DueToday = append(board.DueToday, task)
		case len(board.Upcoming) < upcomingLimit:
			board.Upcoming = append(board.Upcoming, task)
		}
	}
	return board, rows.Err()
}
