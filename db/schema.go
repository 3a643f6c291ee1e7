// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and in-place column additions
package db

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	sponsor_status TEXT NOT NULL DEFAULT 'unknown',
	notes TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);

CREATE TABLE IF NOT EXISTS people (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	name TEXT NOT NULL,
	title TEXT,
	linkedin_url TEXT,
	relationship TEXT NOT NULL DEFAULT 'cold',
	why_reached_out TEXT NOT NULL,
	sponsor_confidence TEXT NOT NULL DEFAULT 'unknown',
	status TEXT NOT NULL DEFAULT 'open',
	outreach_channels TEXT,
	links TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (company_id) REFERENCES companies(id)
);

CREATE INDEX IF NOT EXISTS idx_people_name ON people(name);
CREATE INDEX IF NOT EXISTS idx_people_company_id ON people(company_id);
CREATE INDEX IF NOT EXISTS idx_people_status ON people(status);

CREATE TABLE IF NOT EXISTS touchpoints (
	id TEXT PRIMARY KEY,
	person_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	channel TEXT NOT NULL,
	direction TEXT,
	outcome TEXT,
	message_preview TEXT,
	next_step_action TEXT,
	FOREIGN KEY (person_id) REFERENCES people(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_touchpoints_person_id ON touchpoints(person_id);
CREATE INDEX IF NOT EXISTS idx_touchpoints_date ON touchpoints(date);

CREATE TABLE IF NOT EXISTS follow_ups (
	id TEXT PRIMARY KEY,
	person_id TEXT NOT NULL,
	due_date TEXT NOT NULL,
	action TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'open',
	FOREIGN KEY (person_id) REFERENCES people(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_follow_ups_person_id ON follow_ups(person_id);
CREATE INDEX IF NOT EXISTS idx_follow_ups_due ON follow_ups(status, due_date);

CREATE TABLE IF NOT EXISTS waitlist (
	id TEXT PRIMARY KEY,
	company TEXT NOT NULL,
	name TEXT,
	priority TEXT NOT NULL DEFAULT 'B',
	reason TEXT,
	planned_action_date TEXT,
	status TEXT NOT NULL DEFAULT 'active',
	outreach_channels TEXT,
	links TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_waitlist_status ON waitlist(status);
`

func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return ensureColumns(db)
}

// Columns added after the first release. SQLite doesn't migrate tables when
// the schema constant changes, so these are bolted on in place for existing
// databases.
var requiredColumns = map[string]map[string]string{
	"touchpoints": {"direction": "TEXT"},
	"people":      {"outreach_channels": "TEXT", "links": "TEXT"},
	"waitlist":    {"outreach_channels": "TEXT", "links": "TEXT"},
}

func ensureColumns(db *sql.DB) error {
	for table, columns := range requiredColumns {
		existing, err := tableColumns(db, table)
		if err != nil {
			return err
		}
		for column, sqlType := range columns {
			if _, ok := existing[column]; ok {
				continue
			}
			stmt := fmt.Sprintf(`ALTER TABLE "%s" ADD COLUMN "%s" %s`, table, column, sqlType)
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
			}
		}
	}
	return nil
}

func tableColumns(db *sql.DB, table string) (map[string]struct{}, error) {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info("%s")`, table))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	columns := make(map[string]struct{})
	for rows.Next() {
		var (
			cid        int
			name       string
			ctype      string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		columns[name] = struct{}{}
	}
	return columns, rows.Err()
}
