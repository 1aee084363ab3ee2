package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// Backup is the JSON snapshot of the board. The keys match the storage keys
// of the browser version so its exports can be imported as is.
type Backup struct {
	Events    []EventRecord    `json:"glowSchedule_events"`
	Templates []TemplateRecord `json:"glowSchedule_serviceTemplates"`
}

// EventRecord is an event as stored in a backup.
type EventRecord struct {
	ID        string  `json:"id"`
	Service   string  `json:"service"`
	Color     string  `json:"color"`
	Client    string  `json:"client"`
	Price     float64 `json:"price"`
	Date      string  `json:"date"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// TemplateRecord is a service template as stored in a backup.
type TemplateRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// NewBackup builds a backup from stored events and templates.
func NewBackup(events []*booking.Event, templates []*booking.Template) *Backup {
	b := &Backup{
		Events:    make([]EventRecord, 0, len(events)),
		Templates: make([]TemplateRecord, 0, len(templates)),
	}
	for _, e := range events {
		b.Events = append(b.Events, EventRecord{
			ID:        e.ID,
			Service:   e.Service,
			Color:     e.Color,
			Client:    e.Client,
			Price:     e.Price.Float(),
			Date:      e.DateKey(),
			Start:     e.Start,
			End:       e.End,
			CreatedAt: formatCreated(e.CreatedAt),
		})
	}
	for _, t := range templates {
		b.Templates = append(b.Templates, TemplateRecord{
			ID:        t.ID,
			Name:      t.Name,
			Color:     t.Color,
			Price:     t.Price.Float(),
			CreatedAt: formatCreated(t.CreatedAt),
		})
	}
	return b
}

// WriteJSON writes the backup as indented JSON.
func (b *Backup) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

// ReadBackup decodes a backup written by WriteJSON or by the browser version.
func ReadBackup(r io.Reader) (*Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}
	return &b, nil
}

// BookingEvents converts the event records. A record with an unreadable date
// is returned as an error; nothing else is validated here.
func (b *Backup) BookingEvents() ([]*booking.Event, error) {
	events := make([]*booking.Event, 0, len(b.Events))
	for i, r := range b.Events {
		date, err := dateutil.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("event %d (%s): %w", i, r.ID, err)
		}
		price, err := booking.MoneyFromFloat(r.Price)
		if err != nil {
			return nil, fmt.Errorf("event %d (%s): %w", i, r.ID, err)
		}
		events = append(events, &booking.Event{
			ID:        r.ID,
			Service:   r.Service,
			Color:     r.Color,
			Client:    r.Client,
			Price:     price,
			Date:      date,
			Start:     r.Start,
			End:       r.End,
			CreatedAt: parseCreated(r.CreatedAt),
		})
	}
	return events, nil
}

// BookingTemplates converts the template records.
func (b *Backup) BookingTemplates() ([]*booking.Template, error) {
	templates := make([]*booking.Template, 0, len(b.Templates))
	for i, r := range b.Templates {
		price, err := booking.MoneyFromFloat(r.Price)
		if err != nil {
			return nil, fmt.Errorf("template %d (%s): %w", i, r.Name, err)
		}
		templates = append(templates, &booking.Template{
			ID:        r.ID,
			Name:      r.Name,
			Color:     r.Color,
			Price:     price,
			CreatedAt: parseCreated(r.CreatedAt),
		})
	}
	return templates, nil
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func parseCreated(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
