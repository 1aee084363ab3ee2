// Package export converts board data to and from calendar, spreadsheet and
// backup files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

const productID = "-//glowboard//weekly board//EN"

// Extension properties carrying the fields iCalendar has no slot for.
const (
	propClient ical.ComponentProperty = "X-GLOWBOARD-CLIENT"
	propPrice  ical.ComponentProperty = "X-GLOWBOARD-PRICE"
	propColor  ical.ComponentProperty = "COLOR"
)

var (
	errAllDay      = errors.New("all-day events have no time slot")
	errMissingTime = errors.New("missing DTSTART or DTEND")
	errMultiDay    = errors.New("event spans more than one day")
)

// WriteICS writes events as an iCalendar feed.
func WriteICS(w io.Writer, events []*booking.Event, currency string, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now)
		if !e.CreatedAt.IsZero() {
			ve.SetCreatedTime(e.CreatedAt)
		}
		ve.SetStartAt(e.StartAt())
		ve.SetEndAt(e.EndAt())
		ve.SetSummary(e.Service)
		ve.SetDescription(fmt.Sprintf("%s - %s", e.Client, e.Price.Format(currency)))
		ve.SetProperty(propClient, e.Client)
		ve.SetProperty(propPrice, e.Price.String())
		if e.Color != "" {
			ve.SetProperty(propColor, e.Color)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// SkippedEntry is a calendar entry that could not become an event.
type SkippedEntry struct {
	UID     string
	Summary string
	Err     error
}

// ReadICS parses an iCalendar feed into events. Times are converted to local
// time. Entries that cannot be placed in a single day are returned as skipped
// and parsing continues with the next one.
func ReadICS(r io.Reader) ([]*booking.Event, []SkippedEntry, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading calendar: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var (
		events  []*booking.Event
		skipped []SkippedEntry
	)
	for _, ve := range cal.Events() {
		e, err := eventFromVEvent(ve)
		if err != nil {
			skipped = append(skipped, SkippedEntry{
				UID:     propValue(ve, ical.ComponentPropertyUniqueId),
				Summary: propValue(ve, ical.ComponentPropertySummary),
				Err:     err,
			})
			continue
		}
		events = append(events, e)
	}
	return events, skipped, nil
}

func eventFromVEvent(ve *ical.VEvent) (*booking.Event, error) {
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		if !strings.Contains(p.Value, "T") {
			return nil, errAllDay
		}
		if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return nil, errAllDay
		}
	} else {
		return nil, errMissingTime
	}
	if ve.GetProperty(ical.ComponentPropertyDtEnd) == nil {
		return nil, errMissingTime
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return nil, fmt.Errorf("DTEND: %w", err)
	}
	start, end = start.In(time.Local), end.In(time.Local)

	if !dateutil.SameDay(start, end) {
		return nil, errMultiDay
	}

	e := &booking.Event{
		ID:      propValue(ve, ical.ComponentPropertyUniqueId),
		Service: strings.TrimSpace(propValue(ve, ical.ComponentPropertySummary)),
		Client:  strings.TrimSpace(propValue(ve, propClient)),
		Color:   strings.TrimSpace(propValue(ve, propColor)),
		Date:    dateutil.TruncateToDay(start),
		Start:   start.Format("15:04"),
		End:     end.Format("15:04"),
	}

	if e.Client == "" {
		// Foreign feeds carry the client in the description, if anywhere.
		desc := propValue(ve, ical.ComponentPropertyDescription)
		e.Client = strings.TrimSpace(strings.SplitN(desc, "\n", 2)[0])
	}

	if p := propValue(ve, propPrice); p != "" {
		price, err := booking.ParseMoney(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", propPrice, err)
		}
		e.Price = price
	}

	if p := ve.GetProperty(ical.ComponentPropertyCreated); p != nil {
		if t, err := time.Parse("20060102T150405Z", p.Value); err == nil {
			e.CreatedAt = t
		}
	}

	return e, nil
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}
