package booking

import (
	"context"
	"time"
)

// EventPatch carries a partial event update. Nil fields keep their current value.
type EventPatch struct {
	Service *string
	Color   *string
	Client  *string
	Price   *Money
	Date    *time.Time
	Start   *string
	End     *string
}

// Apply copies the non-nil fields of p onto e.
func (p EventPatch) Apply(e *Event) {
	if p.Service != nil {
		e.Service = *p.Service
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Client != nil {
		e.Client = *p.Client
	}
	if p.Price != nil {
		e.Price = *p.Price
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
}

// TemplatePatch carries a partial template update. Nil fields keep their current value.
type TemplatePatch struct {
	Name  *string
	Color *string
	Price *Money
}

// Apply copies the non-nil fields of p onto t.
func (p TemplatePatch) Apply(t *Template) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
}

// Store defines the persistence interface for events and templates.
// Stores never check for conflicts; callers gate writes with the conflict checker.
type Store interface {
	// ListEvents returns every event ordered by date and start time.
	ListEvents(ctx context.Context) ([]*Event, error)

	// ListEventsByDateRange returns events within the date range (inclusive).
	ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]*Event, error)

	// GetEvent returns the event with the given ID, or ErrEventNotFound.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// CreateEvent stores a new event, assigning its ID and creation time.
	CreateEvent(ctx context.Context, e *Event) error

	// UpdateEvent applies a partial update. Returns ErrEventNotFound if missing.
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)

	// DeleteEvent removes an event. Reports whether a row was removed.
	DeleteEvent(ctx context.Context, id string) (bool, error)

	// ListTemplates returns every template ordered by creation.
	ListTemplates(ctx context.Context) ([]*Template, error)

	// GetTemplate returns the template with the given ID, or ErrTemplateNotFound.
	GetTemplate(ctx context.Context, id string) (*Template, error)

	// CreateTemplate stores a new template, assigning its ID and creation time.
	CreateTemplate(ctx context.Context, t *Template) error

	// UpdateTemplate applies a partial update. Returns ErrTemplateNotFound if missing.
	UpdateTemplate(ctx context.Context, id string, patch TemplatePatch) (*Template, error)

	// DeleteTemplate removes a template. Events referencing it by name are untouched.
	DeleteTemplate(ctx context.Context, id string) (bool, error)

	// FindTemplateByName looks a template up by name (case-insensitive, trimmed).
	// Returns nil, nil when no template matches.
	FindTemplateByName(ctx context.Context, name string) (*Template, error)

	// Close releases any resources held by the store.
	Close() error
}
