package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// EventSession identifies what an event form edits. An empty EventID creates a new event.
type EventSession struct {
	EventID string
}

// IsNew reports whether the session creates a new event.
func (s EventSession) IsNew() bool {
	return s.EventID == ""
}

// TemplateSession identifies what a template form edits. An empty TemplateID creates a new template.
type TemplateSession struct {
	TemplateID string
}

// IsNew reports whether the session creates a new template.
func (s TemplateSession) IsNew() bool {
	return s.TemplateID == ""
}

// EventForm is the raw user input of the event form.
type EventForm struct {
	Service string
	Client  string
	Color   string // optional
	Price   string // optional when Service matches a template
	Date    string // YYYY-MM-DD
	Start   string // HH:MM
	End     string // HH:MM
}

// FormFromEvent fills a form with the values of an existing event.
func FormFromEvent(e *booking.Event) EventForm {
	return EventForm{
		Service: e.Service,
		Client:  e.Client,
		Color:   e.Color,
		Price:   e.Price.String(),
		Date:    e.DateKey(),
		Start:   e.Start,
		End:     e.End,
	}
}

// TemplateForm is the raw user input of the template form.
type TemplateForm struct {
	Name  string
	Color string
	Price string
}

// FormFromTemplate fills a form with the values of an existing template.
func FormFromTemplate(t *booking.Template) TemplateForm {
	return TemplateForm{
		Name:  t.Name,
		Color: t.Color,
		Price: t.Price.String(),
	}
}

// eventInput is an EventForm after parsing.
type eventInput struct {
	service string
	client  string
	color   string
	price   *booking.Money // nil when left empty
	date    time.Time
	start   string
	end     string
}

func (f EventForm) parse() (*eventInput, error) {
	in := &eventInput{
		service: strings.TrimSpace(f.Service),
		client:  strings.TrimSpace(f.Client),
		color:   strings.TrimSpace(f.Color),
		start:   strings.TrimSpace(f.Start),
		end:     strings.TrimSpace(f.End),
	}
	date := strings.TrimSpace(f.Date)

	if in.service == "" || in.client == "" || date == "" || in.start == "" || in.end == "" {
		return nil, ErrMissingFields
	}

	var err error
	in.date, err = dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	for _, t := range []string{in.start, in.end} {
		if err := booking.ValidateTimeFormat(t); err != nil {
			return nil, fmt.Errorf("%w, got %q", err, t)
		}
	}

	if in.color != "" {
		if err := booking.ValidateColor(in.color); err != nil {
			return nil, fmt.Errorf("%w, got %q", err, in.color)
		}
	}

	if p := strings.TrimSpace(f.Price); p != "" {
		price, err := booking.ParseMoney(p)
		if err != nil {
			return nil, fmt.Errorf("%w, got %q", ErrInvalidPrice, p)
		}
		in.price = &price
	}

	return in, nil
}

type templateInput struct {
	name  string
	color string
	price booking.Money
}

func (f TemplateForm) parse(defaultColor string) (*templateInput, error) {
	in := &templateInput{
		name:  strings.TrimSpace(f.Name),
		color: strings.TrimSpace(f.Color),
	}
	if in.name == "" {
		return nil, ErrMissingName
	}

	if in.color == "" {
		in.color = defaultColor
	}
	if err := booking.ValidateColor(in.color); err != nil {
		return nil, fmt.Errorf("%w, got %q", err, in.color)
	}

	p := strings.TrimSpace(f.Price)
	price, err := booking.ParseMoney(p)
	if err != nil {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidPrice, p)
	}
	in.price = price

	return in, nil
}
