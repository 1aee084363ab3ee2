package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/javiermolinar/glowboard/internal/booking"
)

const templateColumns = `id, name, color, price, created_at`

func scanTemplate(row scanner) (*booking.Template, error) {
	var (
		t         booking.Template
		price     int64
		createdAt string
	)

	if err := row.Scan(&t.ID, &t.Name, &t.Color, &price, &createdAt); err != nil {
		return nil, err
	}

	t.Price = booking.Money(price)

	var err error
	t.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &t, nil
}

// ListTemplates returns every template in creation order.
func (s *SQLite) ListTemplates(ctx context.Context) ([]*booking.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var templates []*booking.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}

	return templates, nil
}

// GetTemplate retrieves a template by ID.
func (s *SQLite) GetTemplate(ctx context.Context, id string) (*booking.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = ?`

	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", booking.ErrTemplateNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying template: %w", err)
	}
	return t, nil
}

// CreateTemplate adds a new template, setting its ID and creation time.
func (s *SQLite) CreateTemplate(ctx context.Context, t *booking.Template) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}

	query := `INSERT INTO templates (` + templateColumns + `) VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Color,
		int64(t.Price),
		t.CreatedAt.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting template %q: %w", t.Name, err)
	}
	return nil
}

// UpdateTemplate applies a partial update and returns the stored template.
// Events that reference the template by name are not touched.
func (s *SQLite) UpdateTemplate(ctx context.Context, id string, patch booking.TemplatePatch) (*booking.Template, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = ?`
	t, err := scanTemplate(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", booking.ErrTemplateNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying template: %w", err)
	}

	patch.Apply(t)

	_, err = tx.ExecContext(ctx,
		`UPDATE templates SET name = ?, color = ?, price = ? WHERE id = ?`,
		t.Name, t.Color, int64(t.Price), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return t, nil
}

// DeleteTemplate removes a template. Reports whether a row was removed.
func (s *SQLite) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// FindTemplateByName returns the first template whose name matches
// (case-insensitive, trimmed), or nil when none does.
func (s *SQLite) FindTemplateByName(ctx context.Context, name string) (*booking.Template, error) {
	templates, err := s.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		if t.Matches(name) {
			return t, nil
		}
	}
	return nil, nil
}
