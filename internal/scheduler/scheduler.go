// Package scheduler decides whether appointment slots are free and suggests free ones.
package scheduler

import (
	"fmt"
	"time"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// stepMinutes is the granularity used when searching for a free slot.
const stepMinutes = 15

// IsTimeSlotFree reports whether [start, end) on date overlaps none of the events.
// Only events on the same calendar day are compared, and the event with ID
// excludeID (when non-empty) is ignored so an edited event never conflicts with itself.
func IsTimeSlotFree(events []*booking.Event, date time.Time, start, end, excludeID string) bool {
	return FindConflict(events, date, start, end, excludeID) == nil
}

// FindConflict returns the first event that overlaps [start, end) on date, or nil.
// Touching intervals do not conflict.
func FindConflict(events []*booking.Event, date time.Time, start, end, excludeID string) *booking.Event {
	candStart := booking.TimeToMinutes(start)
	candEnd := booking.TimeToMinutes(end)

	for _, e := range events {
		if e == nil || !dateutil.SameDay(e.Date, date) {
			continue
		}
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if candStart < booking.TimeToMinutes(e.End) && candEnd > booking.TimeToMinutes(e.Start) {
			return e
		}
	}
	return nil
}

// Slot is a free time range on a date.
type Slot struct {
	Date  time.Time
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// String formats the slot as "YYYY-MM-DD HH:MM-HH:MM".
func (s Slot) String() string {
	return fmt.Sprintf("%s %s-%s", dateutil.FormatDate(s.Date), s.Start, s.End)
}

// Minutes returns the slot length in minutes.
func (s Slot) Minutes() int {
	return booking.TimeToMinutes(s.End) - booking.TimeToMinutes(s.Start)
}

// Scheduler searches for free slots inside the board's opening window.
type Scheduler struct {
	dayStart string // "HH:MM"
	dayEnd   string // "HH:MM"
}

// New creates a new Scheduler for the window [dayStart, dayEnd).
func New(dayStart, dayEnd string) *Scheduler {
	return &Scheduler{
		dayStart: dayStart,
		dayEnd:   dayEnd,
	}
}

// FromHours creates a Scheduler whose window spans whole hours, e.g. 8 to 20.
func FromHours(firstHour, lastHour int) *Scheduler {
	return New(clock(firstHour*60), clock(lastHour*60))
}

// DayStart returns the configured window start.
func (s *Scheduler) DayStart() string {
	return s.dayStart
}

// DayEnd returns the configured window end.
func (s *Scheduler) DayEnd() string {
	return s.dayEnd
}

// CanFit returns true if an appointment of durationMinutes starting at startTime
// stays inside the window.
func (s *Scheduler) CanFit(startTime string, durationMinutes int) bool {
	start := booking.TimeToMinutes(startTime)
	end := booking.TimeToMinutes(s.dayEnd)

	if start < booking.TimeToMinutes(s.dayStart) || start >= end {
		return false
	}
	return start+durationMinutes <= end
}

// ValidateTimeSlot checks a slot against the window.
// Returns an error message if invalid, empty string if valid.
func (s *Scheduler) ValidateTimeSlot(start, end string) string {
	startMin := booking.TimeToMinutes(start)
	endMin := booking.TimeToMinutes(end)

	if startMin < booking.TimeToMinutes(s.dayStart) {
		return "start time is before opening"
	}
	if startMin >= booking.TimeToMinutes(s.dayEnd) {
		return "start time is at or after closing"
	}
	if endMin > booking.TimeToMinutes(s.dayEnd) {
		return "end time is after closing"
	}
	return ""
}

// NextFreeSlot finds the earliest slot of durationMinutes on date that starts at
// or after the given "HH:MM" time, fits the window, and conflicts with no event.
// Candidate starts are aligned to 15 minutes. Returns false when the day is full.
func (s *Scheduler) NextFreeSlot(events []*booking.Event, date time.Time, durationMinutes int, after, excludeID string) (Slot, bool) {
	if durationMinutes <= 0 {
		return Slot{}, false
	}

	windowEnd := booking.TimeToMinutes(s.dayEnd)
	cand := max(booking.TimeToMinutes(after), booking.TimeToMinutes(s.dayStart))
	cand = roundUp(cand)

	for cand+durationMinutes <= windowEnd {
		start := booking.MinutesToTime(cand)
		end := clock(cand + durationMinutes)
		conflict := FindConflict(events, date, start, end, excludeID)
		if conflict == nil {
			return Slot{Date: dateutil.TruncateToDay(date), Start: start, End: end}, true
		}
		next := roundUp(booking.TimeToMinutes(conflict.End))
		if next <= cand {
			next = cand + stepMinutes
		}
		cand = next
	}
	return Slot{}, false
}

// FreeSlots returns the gaps between events inside the window on date.
func (s *Scheduler) FreeSlots(events []*booking.Event, date time.Time) []Slot {
	day := booking.NewDay(date)
	for _, e := range events {
		if dateutil.SameDay(e.Date, date) {
			day.Add(e)
		}
	}

	windowStart := booking.TimeToMinutes(s.dayStart)
	windowEnd := booking.TimeToMinutes(s.dayEnd)
	cursor := windowStart

	var slots []Slot
	for _, e := range day.Events() {
		start := max(booking.TimeToMinutes(e.Start), windowStart)
		end := min(booking.TimeToMinutes(e.End), windowEnd)
		if start > cursor && cursor < windowEnd {
			slots = append(slots, Slot{Date: day.Date, Start: clock(cursor), End: clock(min(start, windowEnd))})
		}
		cursor = max(cursor, end)
	}
	if cursor < windowEnd {
		slots = append(slots, Slot{Date: day.Date, Start: clock(cursor), End: clock(windowEnd)})
	}
	return slots
}

// clock formats minutes since midnight, keeping 1440 as "24:00".
func clock(m int) string {
	if m >= 24*60 {
		return "24:00"
	}
	return booking.MinutesToTime(m)
}

// roundUp rounds minutes up to the next step boundary.
func roundUp(m int) int {
	if r := m % stepMinutes; r != 0 {
		return m + stepMinutes - r
	}
	return m
}
