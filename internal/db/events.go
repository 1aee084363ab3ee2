package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/glowboard/internal/booking"
)

const eventColumns = `id, service, color, client, price, date, start_time, end_time, created_at`

func scanEvent(row scanner) (*booking.Event, error) {
	var (
		e         booking.Event
		price     int64
		date      string
		createdAt string
	)

	err := row.Scan(
		&e.ID,
		&e.Service,
		&e.Color,
		&e.Client,
		&price,
		&date,
		&e.Start,
		&e.End,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.Price = booking.Money(price)

	e.Date, err = parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing event date: %w", err)
	}

	e.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &e, nil
}

func (s *SQLite) queryEvents(ctx context.Context, query string, args ...any) ([]*booking.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*booking.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// ListEvents returns every event ordered by date and start time.
func (s *SQLite) ListEvents(ctx context.Context) ([]*booking.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date, start_time, created_at`
	return s.queryEvents(ctx, query)
}

// ListEventsByDateRange returns all events within the date range (inclusive).
func (s *SQLite) ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]*booking.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_time, created_at
	`
	return s.queryEvents(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*booking.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", booking.ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// CreateEvent adds a new event, setting its ID and creation time.
// No conflict check happens here.
func (s *SQLite) CreateEvent(ctx context.Context, e *booking.Event) error {
	return insertEvent(ctx, s.db, e, s.now())
}

// CreateEvents adds multiple events in a single transaction.
func (s *SQLite) CreateEvents(ctx context.Context, events []*booking.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now()
	for _, e := range events {
		if err := insertEvent(ctx, tx, e, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertEvent(ctx context.Context, db execer, e *booking.Event, now time.Time) error {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}

	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		e.ID,
		e.Service,
		e.Color,
		e.Client,
		int64(e.Price),
		e.Date.Format(dateLayout),
		e.Start,
		e.End,
		e.CreatedAt.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting event %q: %w", e.Service, err)
	}
	return nil
}

// UpdateEvent applies a partial update and returns the stored event.
func (s *SQLite) UpdateEvent(ctx context.Context, id string, patch booking.EventPatch) (*booking.Event, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	e, err := scanEvent(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", booking.ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}

	patch.Apply(e)

	update := `
		UPDATE events
		SET service = ?, color = ?, client = ?, price = ?, date = ?, start_time = ?, end_time = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, update,
		e.Service,
		e.Color,
		e.Client,
		int64(e.Price),
		e.Date.Format(dateLayout),
		e.Start,
		e.End,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return e, nil
}

// DeleteEvent removes an event. Reports whether a row was removed.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
