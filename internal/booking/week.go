package booking

import (
	"time"

	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// Week holds 7 days starting from Monday.
type Week struct {
	StartDate time.Time // Monday of the week
	Days      [7]*Day   // Monday (0) through Sunday (6)
}

// NewWeek creates a Week starting from the Monday of the given date.
func NewWeek(date time.Time) *Week {
	monday := dateutil.StartOfWeek(date)
	w := &Week{StartDate: monday}
	for i := range 7 {
		w.Days[i] = NewDay(monday.AddDate(0, 0, i))
	}
	return w
}

// NewWeekFromEvents creates a Week and distributes events to their days.
// Events outside the week's date range are ignored.
func NewWeekFromEvents(date time.Time, events []*Event) *Week {
	w := NewWeek(date)
	for _, e := range events {
		if day := w.DayByDate(e.Date); day != nil {
			day.Add(e)
		}
	}
	return w
}

// Day returns the Day for the given weekday (0=Monday, 6=Sunday).
// Returns nil if weekday is out of range.
func (w *Week) Day(weekday int) *Day {
	if weekday < 0 || weekday > 6 {
		return nil
	}
	return w.Days[weekday]
}

// DayByDate returns the Day for the given date, nil if not in this week.
func (w *Week) DayByDate(date time.Time) *Day {
	for _, day := range w.Days {
		if dateutil.SameDay(day.Date, date) {
			return day
		}
	}
	return nil
}

// Contains reports whether date falls within this week.
func (w *Week) Contains(date time.Time) bool {
	return w.DayByDate(date) != nil
}

// AllEvents returns all events across all days, sorted by date and start time.
func (w *Week) AllEvents() []*Event {
	var result []*Event
	for _, day := range w.Days {
		result = append(result, day.Events()...)
	}
	return result
}

// EndDate returns the Sunday of the week.
func (w *Week) EndDate() time.Time {
	return w.StartDate.AddDate(0, 0, 6)
}

// WeekStats holds aggregated statistics for the week.
type WeekStats struct {
	Appointments  int
	BookedMinutes int
	Revenue       Money
	DayStats      [7]DayStats
}

// AverageTicket returns the mean price per appointment.
func (s WeekStats) AverageTicket() Money {
	if s.Appointments == 0 {
		return 0
	}
	return s.Revenue / Money(s.Appointments)
}

// BestDay returns the weekday (0=Monday) with the highest revenue and that revenue.
// Returns -1 when nothing was earned.
func (s WeekStats) BestDay() (weekday int, revenue Money) {
	weekday = -1
	for i, ds := range s.DayStats {
		if ds.Revenue > revenue {
			revenue = ds.Revenue
			weekday = i
		}
	}
	return weekday, revenue
}

// BusiestDay returns the weekday (0=Monday) with the most booked minutes.
// Returns -1 when the week is empty.
func (s WeekStats) BusiestDay() (weekday int, minutes int) {
	weekday = -1
	for i, ds := range s.DayStats {
		if ds.BookedMinutes > minutes {
			minutes = ds.BookedMinutes
			weekday = i
		}
	}
	return weekday, minutes
}

// Stats calculates statistics for the week.
func (w *Week) Stats() WeekStats {
	var stats WeekStats
	for i, day := range w.Days {
		stats.add(i, day.Stats())
	}
	return stats
}

// StatsWithin calculates statistics counting only minutes inside [from, to).
func (w *Week) StatsWithin(from, to string) WeekStats {
	var stats WeekStats
	for i, day := range w.Days {
		stats.add(i, day.StatsWithin(from, to))
	}
	return stats
}

func (s *WeekStats) add(i int, ds DayStats) {
	s.DayStats[i] = ds
	s.Appointments += ds.Appointments
	s.BookedMinutes += ds.BookedMinutes
	s.Revenue += ds.Revenue
}

// WeekdayName returns the name of the weekday (0=Monday).
func WeekdayName(weekday int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}

// WeekdayShortName returns the short name of the weekday (0=Monday).
func WeekdayShortName(weekday int) string {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}
