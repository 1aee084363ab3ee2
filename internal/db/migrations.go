package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS templates (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			color      TEXT NOT NULL,
			price      INTEGER NOT NULL DEFAULT 0 CHECK(price >= 0),
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			service    TEXT NOT NULL,
			color      TEXT NOT NULL,
			client     TEXT NOT NULL,
			price      INTEGER NOT NULL DEFAULT 0 CHECK(price >= 0),
			date       TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time   TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
