package booking

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// Day holds all events for a single day.
type Day struct {
	Date   time.Time
	events []*Event // sorted by Start
}

// NewDay creates a Day for the given date.
func NewDay(date time.Time) *Day {
	return &Day{
		Date:   dateutil.TruncateToDay(date),
		events: make([]*Event, 0),
	}
}

// Events returns a copy of the event slice.
func (d *Day) Events() []*Event {
	result := make([]*Event, len(d.events))
	copy(result, d.events)
	return result
}

// Add adds an event to the day, maintaining sorted order by start time.
// Overlaps are not rejected here; imported data may already contain them.
func (d *Day) Add(e *Event) {
	if e == nil {
		return
	}
	d.events = append(d.events, e)
	slices.SortStableFunc(d.events, func(a, b *Event) int {
		return cmp.Compare(TimeToMinutes(a.Start), TimeToMinutes(b.Start))
	})
}

// FindOverlapping returns the first event that overlaps with the given slot,
// ignoring the event whose ID equals excludeID.
func (d *Day) FindOverlapping(start, end, excludeID string) *Event {
	for _, e := range d.events {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if TimesOverlap(start, end, e.Start, e.End) {
			return e
		}
	}
	return nil
}

// Remove removes an event from the day by ID.
// Returns the removed event, or nil if not found.
func (d *Day) Remove(id string) *Event {
	for i, e := range d.events {
		if e.ID == id {
			d.events = append(d.events[:i], d.events[i+1:]...)
			return e
		}
	}
	return nil
}

// Len returns the number of events in the day.
func (d *Day) Len() int {
	return len(d.events)
}

// DayStats holds statistics for a single day.
type DayStats struct {
	Appointments  int
	BookedMinutes int
	Revenue       Money
}

// Stats calculates statistics for the day.
func (d *Day) Stats() DayStats {
	var stats DayStats
	for _, e := range d.events {
		stats.Appointments++
		if dur := e.Duration(); dur > 0 {
			stats.BookedMinutes += dur
		}
		stats.Revenue += e.Price
	}
	return stats
}

// StatsWithin counts only the minutes booked inside [from, to), e.g. the visible board hours.
func (d *Day) StatsWithin(from, to string) DayStats {
	stats := d.Stats()
	stats.BookedMinutes = 0
	for _, e := range d.events {
		stats.BookedMinutes += OverlapMinutes(e.Start, e.End, from, to)
	}
	return stats
}
