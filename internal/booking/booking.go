// Package booking defines the core domain types for glowboard.
package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// DefaultColor is the block color used when neither the form nor a template provides one.
const DefaultColor = "#f8c8dc"

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidColor      = errors.New("color must be in #rrggbb format")
)

// Domain errors.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// Template is a reusable service definition with a default color and price.
type Template struct {
	ID        string
	Name      string
	Color     string // "#rrggbb"
	Price     Money
	CreatedAt time.Time
}

// Matches reports whether name refers to this template (case-insensitive, trimmed).
func (t *Template) Matches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(t.Name), strings.TrimSpace(name))
}

// Event is a booked appointment on the board.
type Event struct {
	ID        string
	Service   string // soft reference to Template.Name
	Color     string // "#rrggbb"
	Client    string
	Price     Money
	Date      time.Time // local midnight
	Start     string    // "HH:MM"
	End       string    // "HH:MM"
	CreatedAt time.Time
}

// DateKey returns the event date as YYYY-MM-DD.
func (e *Event) DateKey() string {
	return dateutil.FormatDate(e.Date)
}

// OnDate reports whether the event falls on the calendar day of date.
func (e *Event) OnDate(date time.Time) bool {
	return dateutil.SameDay(e.Date, date)
}

// Duration returns the event duration in minutes.
// Negative when end precedes start; such events are stored as entered.
func (e *Event) Duration() int {
	return TimeToMinutes(e.End) - TimeToMinutes(e.Start)
}

// OverlapsWith returns true if both events are on the same day and their
// time ranges overlap. Touching ranges do not overlap.
func (e *Event) OverlapsWith(other *Event) bool {
	if other == nil || !e.OnDate(other.Date) {
		return false
	}
	return TimesOverlap(e.Start, e.End, other.Start, other.End)
}

// StartAt returns the event start as a local time.Time.
func (e *Event) StartAt() time.Time {
	return atClock(e.Date, e.Start)
}

// EndAt returns the event end as a local time.Time.
func (e *Event) EndAt() time.Time {
	return atClock(e.Date, e.End)
}

// IsPast returns true if the event's end time has passed.
func (e *Event) IsPast(now time.Time) bool {
	return now.After(e.EndAt())
}

func atClock(date time.Time, clock string) time.Time {
	m := TimeToMinutes(clock)
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location())
}

// ValidateTimeFormat checks that s is a wall-clock time in HH:MM format.
func ValidateTimeFormat(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// ValidateColor checks that s is a #rrggbb hex color.
func ValidateColor(s string) error {
	if len(s) != 7 || s[0] != '#' {
		return ErrInvalidColor
	}
	for _, c := range strings.ToLower(s[1:]) {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ErrInvalidColor
		}
	}
	return nil
}
