package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/grid"
	"github.com/javiermolinar/glowboard/internal/summary"
)

// PrintOpts configures event printing behavior.
type PrintOpts struct {
	Currency     string
	ShowID       bool // Show event IDs
	Verbose      bool // Show full service names
	MaxNameWidth int  // Maximum service width (0 = auto)
}

// CalcMaxNameWidth calculates the maximum service name width based on options.
func (o PrintOpts) CalcMaxNameWidth(defaultWidth int) int {
	if o.MaxNameWidth > 0 {
		return o.MaxNameWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// "  ■■ HH:MM-HH:MM  " plus client and price
	available := termWidth() - 50
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintEventRow prints a single appointment row with consistent formatting.
func PrintEventRow(w io.Writer, e *booking.Event, opts PrintOpts, maxNameWidth int) {
	name := truncate(e.Service, maxNameWidth)
	fmt.Fprintf(w, "  %s %s-%s  %-*s  %-16s %s",
		swatch(e.Color),
		e.Start,
		e.End,
		maxNameWidth, name,
		truncate(e.Client, 16),
		formatStats(e.Price.Format(opts.Currency)),
	)
	if opts.ShowID {
		fmt.Fprintf(w, "  %s", formatMuted(e.ID))
	}
	fmt.Fprintln(w)
}

// printEventsByDay prints events grouped under a header per date.
func printEventsByDay(w io.Writer, events []*booking.Event, opts PrintOpts, maxNameWidth int) {
	var currentDate string
	for _, e := range events {
		date := e.DateKey()
		if date != currentDate {
			if currentDate != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %s\n", formatHeader(e.Date.Format("Mon Jan 2")))
			currentDate = date
		}
		PrintEventRow(w, e, opts, maxNameWidth)
	}
}

// PrintWeekStats prints the totals of a week.
func PrintWeekStats(w io.Writer, stats booking.WeekStats, currency string) {
	fmt.Fprintf(w, "  Appointments: %d   Booked: %s   Revenue: %s\n",
		stats.Appointments,
		summary.FormatMinutes(stats.BookedMinutes),
		formatStats(stats.Revenue.Format(currency)),
	)
	if stats.Appointments > 0 {
		fmt.Fprintf(w, "  Average ticket: %s\n", stats.AverageTicket().Format(currency))
	}
	if day, revenue := stats.BestDay(); day >= 0 {
		fmt.Fprintf(w, "  Best day: %s (%s)\n", booking.WeekdayName(day), revenue.Format(currency))
	}
}

// PrintServiceStats prints the per-service breakdown.
func PrintServiceStats(w io.Writer, services []summary.ServiceStat, currency string) {
	for _, s := range services {
		fmt.Fprintf(w, "  %-20s %3d  %8s  %s\n",
			truncate(s.Service, 20),
			s.Appointments,
			summary.FormatMinutes(s.Minutes),
			formatStats(s.Revenue.Format(currency)),
		)
	}
}

// ErrNotSaved wraps a refused submission whose reason was already printed.
var ErrNotSaved = errors.New("not saved")

// PrintSubmitError explains why a submission was refused.
func PrintSubmitError(w io.Writer, err error) {
	var cerr *board.ConflictError
	if errors.As(err, &cerr) {
		c := cerr.Conflict
		fmt.Fprintf(w, "%s %s-%s is already booked: %s (%s)\n",
			formatWarn("Slot taken."), c.Start, c.End, c.Service, c.Client)
		if cerr.Suggestion != nil {
			fmt.Fprintf(w, "Next free slot: %s\n", cerr.Suggestion)
		}
		return
	}
	fmt.Fprintf(w, "%s %v\n", formatWarn("Not saved."), err)
}

// RenderGrid draws the week as a text board: one line per hour, one column
// per weekday. Each block shows its service on its first row and its client
// on the second.
func RenderGrid(w io.Writer, wb *board.WeekBoard, mapper *grid.Mapper, colWidth int) {
	if colWidth < 6 {
		colWidth = 6
	}
	today := wb.TodayColumn()

	fmt.Fprintf(w, "%-6s", "")
	for col := range grid.Columns {
		label := fmt.Sprintf("%s %d", booking.WeekdayShortName(col), wb.Layout.Day(col).Day())
		label = pad(label, colWidth)
		if col == today {
			label = formatToday(label)
		} else {
			label = formatHeader(label)
		}
		fmt.Fprintf(w, "│%s", label)
	}
	fmt.Fprintln(w, "│")

	for row := range mapper.Rows() {
		fmt.Fprintf(w, "%-6s", formatMuted(mapper.RowClock(row)))
		for col := range grid.Columns {
			fmt.Fprint(w, "│")
			b := wb.Layout.Covering(col, row)
			if b == nil {
				fmt.Fprint(w, strings.Repeat(" ", colWidth))
				continue
			}
			var text string
			switch row - b.Row {
			case 0:
				text = b.Event.Service
			case 1:
				text = b.Event.Client
			}
			fmt.Fprint(w, formatBlock(pad(truncate(text, colWidth), colWidth), b.Event.Color))
		}
		fmt.Fprintln(w, "│")
	}
}

// gridColumnWidth fits seven columns plus the hour labels into the terminal.
func gridColumnWidth() int {
	return max(6, min(18, (termWidth()-7)/grid.Columns-1))
}

func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
