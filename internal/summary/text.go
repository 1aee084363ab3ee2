package summary

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// Text renders the summary as plain text, suitable for the clipboard.
func (s *WeekSummary) Text(currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Week %s - %s\n", dateutil.FormatDate(s.Start), dateutil.FormatDate(s.End))

	for i := range 7 {
		date := s.Start.AddDate(0, 0, i)
		var lines []string
		for _, e := range s.Events {
			if e.OnDate(date) {
				lines = append(lines, fmt.Sprintf("  %s-%s  %s (%s)  %s",
					e.Start, e.End, e.Service, e.Client, e.Price.Format(currency)))
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s %s\n", booking.WeekdayName(i), date.Format("Jan 2"))
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}

	st := s.Stats
	fmt.Fprintf(&b, "\nAppointments: %d\n", st.Appointments)
	fmt.Fprintf(&b, "Booked: %s\n", FormatMinutes(st.BookedMinutes))
	fmt.Fprintf(&b, "Revenue: %s\n", st.Revenue.Format(currency))
	if day, revenue := st.BestDay(); day >= 0 {
		fmt.Fprintf(&b, "Best day: %s (%s)\n", booking.WeekdayName(day), revenue.Format(currency))
	}

	return b.String()
}

// FormatMinutes formats minutes as "2h 30m", "45m" or "3h".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
